package codec

import (
	"encoding/base64"
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/errs"
	"github.com/signadot/datatree/ir"
	"github.com/signadot/datatree/kind"
	"github.com/signadot/datatree/strided"
)

const (
	EncodingBase64 = "base64"
	EncodingList   = "list"
)

// byteOrder of base64 array payloads.
var byteOrder = binary.LittleEndian

// elemCodec decodes the values of one primitive kind.
type elemCodec interface {
	atomic(n *ir.Node) (attr.Attribute, error)
	array(shape []int, encoding string, data *ir.Node) (attr.Attribute, error)
	summary(shape []int) (attr.Attribute, error)
}

// elems is read-only after initialization.
var elems = map[kind.Kind]elemCodec{
	kind.Bool:    scalarCodec[bool]{},
	kind.Int8:    scalarCodec[int8]{},
	kind.Int16:   scalarCodec[int16]{},
	kind.Int32:   scalarCodec[int32]{},
	kind.Int64:   scalarCodec[int64]{},
	kind.Uint8:   scalarCodec[uint8]{},
	kind.Uint16:  scalarCodec[uint16]{},
	kind.Uint32:  scalarCodec[uint32]{},
	kind.Uint64:  scalarCodec[uint64]{},
	kind.Float32: scalarCodec[float32]{},
	kind.Float64: scalarCodec[float64]{},
	kind.String:  stringCodec{},
}

type scalarCodec[T kind.Scalar] struct{}

func (scalarCodec[T]) atomic(n *ir.Node) (attr.Attribute, error) {
	v, err := scalarOf[T](n)
	if err != nil {
		return nil, err
	}
	return attr.NewAtomic(v), nil
}

func (scalarCodec[T]) summary(shape []int) (attr.Attribute, error) {
	return attr.NewArraySummary[T](shape...)
}

func (scalarCodec[T]) array(shape []int, encoding string, data *ir.Node) (attr.Attribute, error) {
	n := strided.Size(shape)
	switch encoding {
	case EncodingList:
		buf, err := listOf(n, data, scalarOf[T])
		if err != nil {
			return nil, err
		}
		return attr.ArrayFromData(buf, shape...)
	case EncodingBase64:
		if data.Type != ir.StringType {
			return nil, errs.Field(errs.TypeMismatch, "data", "expected base64 string, got %s", data.Type)
		}
		raw, err := decodeBase64(data.String)
		if err != nil {
			return nil, errs.Field(errs.MalformedArray, "data", "%v", err)
		}
		size := kind.Of[T]().Size()
		if n > math.MaxInt/size {
			return nil, errs.Field(errs.MalformedArray, "data", "shape %v of %s is too large", shape, kind.Of[T]())
		}
		if len(raw) != n*size {
			return nil, errs.Field(errs.MalformedArray, "data",
				"decoded %d bytes, shape %v of %s needs %d", len(raw), shape, kind.Of[T](), n*size)
		}
		buf := make([]T, n)
		if _, err := binary.Decode(raw, byteOrder, buf); err != nil {
			return nil, errs.Field(errs.MalformedArray, "data", "%v", err)
		}
		return attr.ArrayFromData(buf, shape...)
	}
	return nil, errs.Field(errs.UnsupportedEncoding, "encoding", "%q", encoding)
}

type stringCodec struct{}

func (stringCodec) atomic(n *ir.Node) (attr.Attribute, error) {
	if n.Type != ir.StringType {
		return nil, errs.New(errs.TypeMismatch, "expected string, got %s", n.Type)
	}
	return attr.NewString(n.String), nil
}

func (stringCodec) summary(shape []int) (attr.Attribute, error) {
	return attr.NewArraySummary[string](shape...)
}

func (stringCodec) array(shape []int, encoding string, data *ir.Node) (attr.Attribute, error) {
	switch encoding {
	case EncodingList:
		buf, err := listOf(strided.Size(shape), data, func(n *ir.Node) (string, error) {
			if n.Type != ir.StringType {
				return "", errs.New(errs.TypeMismatch, "expected string, got %s", n.Type)
			}
			return n.String, nil
		})
		if err != nil {
			return nil, err
		}
		return attr.ArrayFromData(buf, shape...)
	case EncodingBase64:
		return nil, errs.Field(errs.UnsupportedEncoding, "encoding", "string arrays must use %q encoding", EncodingList)
	}
	return nil, errs.Field(errs.UnsupportedEncoding, "encoding", "%q", encoding)
}

func listOf[T any](n int, data *ir.Node, f func(*ir.Node) (T, error)) ([]T, error) {
	if data.Type != ir.ArrayType {
		return nil, errs.Field(errs.TypeMismatch, "data", "expected list, got %s", data.Type)
	}
	if len(data.Values) != n {
		return nil, errs.Field(errs.MalformedArray, "data", "list has %d elements, shape needs %d", len(data.Values), n)
	}
	res := make([]T, n)
	for i, v := range data.Values {
		e, err := f(v)
		if err != nil {
			return nil, errs.Wrap("data["+strconv.Itoa(i)+"]", err)
		}
		res[i] = e
	}
	return res, nil
}

// decodeBase64 accepts the standard and URL-safe alphabets, with or
// without padding.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	if strings.ContainsAny(s, "-_") {
		return base64.RawURLEncoding.DecodeString(s)
	}
	return base64.RawStdEncoding.DecodeString(s)
}

func encodeBase64(b []byte) string {
	return base64.URLEncoding.EncodeToString(b)
}

type signed interface {
	int8 | int16 | int32 | int64
}

type unsigned interface {
	uint8 | uint16 | uint32 | uint64
}

func scalarOf[T kind.Scalar](n *ir.Node) (T, error) {
	var res T
	var err error
	switch p := any(&res).(type) {
	case *bool:
		if n.Type != ir.BoolType {
			return res, errs.New(errs.TypeMismatch, "expected bool, got %s", n.Type)
		}
		*p = n.Bool
	case *int8:
		*p, err = signedOf[int8](n)
	case *int16:
		*p, err = signedOf[int16](n)
	case *int32:
		*p, err = signedOf[int32](n)
	case *int64:
		*p, err = signedOf[int64](n)
	case *uint8:
		*p, err = unsignedOf[uint8](n)
	case *uint16:
		*p, err = unsignedOf[uint16](n)
	case *uint32:
		*p, err = unsignedOf[uint32](n)
	case *uint64:
		*p, err = unsignedOf[uint64](n)
	case *float32:
		var f float64
		f, err = floatOf(n)
		if err == nil && math.IsInf(float64(float32(f)), 0) && !math.IsInf(f, 0) {
			return res, errs.New(errs.TypeMismatch, "%s out of range for float32", describe(n))
		}
		*p = float32(f)
	case *float64:
		*p, err = floatOf(n)
	}
	return res, err
}

func signedOf[T signed](n *ir.Node) (T, error) {
	if !n.IsIntegral() {
		return 0, errs.New(errs.TypeMismatch, "expected %s, got %s", kind.Of[T](), describe(n))
	}
	i, err := n.Int64Value()
	if err != nil || int64(T(i)) != i {
		return 0, errs.New(errs.TypeMismatch, "%s out of range for %s", describe(n), kind.Of[T]())
	}
	return T(i), nil
}

func unsignedOf[T unsigned](n *ir.Node) (T, error) {
	if !n.IsIntegral() {
		return 0, errs.New(errs.TypeMismatch, "expected %s, got %s", kind.Of[T](), describe(n))
	}
	u, err := n.Uint64Value()
	if err != nil || uint64(T(u)) != u {
		return 0, errs.New(errs.TypeMismatch, "%s out of range for %s", describe(n), kind.Of[T]())
	}
	return T(u), nil
}

func floatOf(n *ir.Node) (float64, error) {
	if n.Type != ir.NumberType {
		return 0, errs.New(errs.TypeMismatch, "expected number, got %s", n.Type)
	}
	f, err := n.Float64Value()
	if err != nil {
		return 0, errs.New(errs.TypeMismatch, "%v", err)
	}
	return f, nil
}

func describe(n *ir.Node) string {
	if n.Type != ir.NumberType {
		return n.Type.String()
	}
	d, err := ir.ToJSON(n)
	if err != nil {
		return n.Type.String()
	}
	return string(d)
}

// scalarNode encodes one atomic value.
func scalarNode(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case bool:
		return ir.FromBool(x), nil
	case int8:
		return ir.FromInt(int64(x)), nil
	case int16:
		return ir.FromInt(int64(x)), nil
	case int32:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint8:
		return ir.FromUint(uint64(x)), nil
	case uint16:
		return ir.FromUint(uint64(x)), nil
	case uint32:
		return ir.FromUint(uint64(x)), nil
	case uint64:
		return ir.FromUint(x), nil
	case float32:
		if err := checkFinite(float64(x)); err != nil {
			return nil, err
		}
		return ir.FromNumber(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case float64:
		if err := checkFinite(x); err != nil {
			return nil, err
		}
		return ir.FromFloat(x), nil
	case string:
		return ir.FromString(x), nil
	}
	return nil, errs.New(errs.UnrecognizedType, "%T", v)
}

func checkFinite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errs.Field(errs.TypeMismatch, "value", "%v has no JSON representation", f)
	}
	return nil
}
