package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
	"github.com/signadot/datatree/ir"
)

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("format: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("format: CBOR decoder initialization failed: " + err.Error())
	}
}

// Option configures Marshal.
type Option func(*options)

type options struct {
	indent string
}

// Indent sets the JSON indentation; the empty string yields compact output.
func Indent(s string) Option {
	return func(o *options) { o.indent = s }
}

// Marshal renders y in format f.  Object key order is kept in JSON and
// YAML.  CBOR output uses core deterministic encoding, which sorts keys.
func Marshal(f Format, y *ir.Node, opts ...Option) ([]byte, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	switch f {
	case JSONFormat:
		d, err := ir.ToJSON(y)
		if err != nil {
			return nil, err
		}
		if o.indent == "" {
			return d, nil
		}
		buf := &bytes.Buffer{}
		if err := json.Indent(buf, d, "", o.indent); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	case YAMLFormat:
		return yaml.Marshal(toOrdered(y))
	case CBORFormat:
		return cborEnc.Marshal(ir.ToAny(y))
	}
	return nil, fmt.Errorf("%w: %d", ErrBadFormat, f)
}

// Write renders y in format f to w.
func Write(w io.Writer, f Format, y *ir.Node, opts ...Option) error {
	d, err := Marshal(f, y, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// Unmarshal parses a document in format f.
func Unmarshal(f Format, d []byte) (*ir.Node, error) {
	var v any
	switch f {
	case JSONFormat:
		return ir.FromJSON(d)
	case YAMLFormat:
		if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
			return nil, err
		}
	case CBORFormat:
		if err := cborDec.Unmarshal(d, &v); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, f)
	}
	return FromAny(v)
}

func toOrdered(y *ir.Node) any {
	switch y.Type {
	case ir.ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = toOrdered(v)
		}
		return res
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(y.Fields))
		for i, f := range y.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: toOrdered(y.Values[i])}
		}
		return res
	}
	return ir.ToAny(y)
}

// FromAny builds a node from values produced by the YAML, CBOR or JSON
// decoders.
func FromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case []byte:
		return ir.FromString(string(x)), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int8:
		return ir.FromInt(int64(x)), nil
	case int16:
		return ir.FromInt(int64(x)), nil
	case int32:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint:
		return ir.FromUint(uint64(x)), nil
	case uint8:
		return ir.FromUint(uint64(x)), nil
	case uint16:
		return ir.FromUint(uint64(x)), nil
	case uint32:
		return ir.FromUint(uint64(x)), nil
	case uint64:
		return ir.FromUint(x), nil
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case json.Number:
		return ir.FromNumber(x.String())
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, len(x))
		for i, item := range x {
			n, err := FromAny(item.Value)
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: fmt.Sprint(item.Key), Val: n}
		}
		return ir.FromKeyVals(kvs), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		kvs := make([]ir.KeyVal, len(keys))
		for i, k := range keys {
			n, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: k, Val: n}
		}
		return ir.FromKeyVals(kvs), nil
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[fmt.Sprint(k)] = e
		}
		return FromAny(m)
	}
	return nil, fmt.Errorf("%w: unsupported value of type %T", ir.ErrParse, v)
}

func fromFloat(f float64) (*ir.Node, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v", ir.ErrNumber, f)
	}
	return ir.FromFloat(f), nil
}
