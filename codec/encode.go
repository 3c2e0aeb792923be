package codec

import (
	"encoding/binary"

	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/errs"
	"github.com/signadot/datatree/ir"
)

// Encode produces the full document of a.  Summary arrays and
// dictionaries have no payload to encode and fail with
// errs.UnsupportedOperation; use EncodeSummary for them.
func Encode(a attr.Attribute) (*ir.Node, error) {
	return encode(a, false)
}

// EncodeSummary produces the summary document of a: its metadata, the
// value of atomic and string attributes, and the element type and shape of
// arrays.
func EncodeSummary(a attr.Attribute) (*ir.Node, error) {
	return encode(a, true)
}

// Marshal encodes a with Encode and prints it as JSON.
func Marshal(a attr.Attribute) ([]byte, error) {
	doc, err := Encode(a)
	if err != nil {
		return nil, err
	}
	return ir.ToJSON(doc)
}

// MarshalSummary encodes a with EncodeSummary and prints it as JSON.
func MarshalSummary(a attr.Attribute) ([]byte, error) {
	doc, err := EncodeSummary(a)
	if err != nil {
		return nil, err
	}
	return ir.ToJSON(doc)
}

func encode(a attr.Attribute, summary bool) (*ir.Node, error) {
	if a == nil {
		return nil, errs.New(errs.UnsupportedOperation, "cannot encode a nil attribute")
	}
	if a.IsSummary() && !summary && a.Kind().IsContainer() {
		return nil, errs.New(errs.UnsupportedOperation, "summary %s has no payload to encode", a.TypeName())
	}
	res := ir.FromKeyVals([]ir.KeyVal{{Key: "type", Val: ir.FromString(a.TypeName())}})
	var value *ir.Node
	switch x := a.(type) {
	case *attr.Null:
		value = ir.Null()
	case *attr.String:
		value = ir.FromString(x.Get())
	case attr.AnyAtomic:
		v, err := scalarNode(x.Value())
		if err != nil {
			return nil, err
		}
		value = v
	case attr.AnyArray:
		v, err := encodeArray(x, summary)
		if err != nil {
			return nil, errs.Wrap("value", err)
		}
		value = v
	case *attr.Dictionary:
		if summary {
			break
		}
		value = &ir.Node{Type: ir.ObjectType}
		for k, child := range x.All() {
			c, err := encode(child, summary)
			if err != nil {
				return nil, errs.Wrap("value."+k, err)
			}
			value.Set(k, c)
		}
	default:
		return nil, errs.New(errs.UnrecognizedType, "%T", a)
	}
	if value != nil {
		res.Set("value", value)
	}
	if d := a.Description(); d != "" {
		res.Set("description", ir.FromString(d))
	}
	if g := a.Group(); g != "" {
		res.Set("group", ir.FromString(g))
	}
	return res, nil
}

func encodeArray(a attr.AnyArray, summary bool) (*ir.Node, error) {
	shape := a.Shape()
	dims := make([]*ir.Node, len(shape))
	for i, e := range shape {
		dims[i] = ir.FromInt(int64(e))
	}
	res := ir.FromKeyVals([]ir.KeyVal{
		{Key: "type", Val: ir.FromString(a.ElemKind().String())},
		{Key: "shape", Val: ir.FromSlice(dims)},
	})
	if summary {
		return res, nil
	}
	if !a.HasData() {
		return nil, errs.New(errs.MalformedArray, "array of shape %v has no data", shape)
	}
	if strs, ok := a.Elements().([]string); ok {
		list := make([]*ir.Node, len(strs))
		for i, s := range strs {
			list[i] = ir.FromString(s)
		}
		res.Set("encoding", ir.FromString(EncodingList))
		res.Set("data", ir.FromSlice(list))
		return res, nil
	}
	raw, err := binary.Append(nil, byteOrder, a.Elements())
	if err != nil {
		return nil, errs.New(errs.MalformedArray, "%v", err)
	}
	res.Set("encoding", ir.FromString(EncodingBase64))
	res.Set("data", ir.FromString(encodeBase64(raw)))
	return res, nil
}
