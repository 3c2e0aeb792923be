package codec

import (
	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/errs"
	"github.com/signadot/datatree/ir"
	"github.com/signadot/datatree/kind"
	"github.com/signadot/datatree/strided"
)

// Decode decodes an attribute document
//
//	{"type": <wire name>, "value": <payload>}
//
// dispatching on "type".  Either a complete attribute is returned or a
// single *errs.Error naming the offending field.
func Decode(doc *ir.Node, opts ...DecodeOption) (attr.Attribute, error) {
	ds := &decState{}
	for _, opt := range opts {
		opt(ds)
	}
	return ds.decode(doc)
}

// Unmarshal parses JSON text and decodes it with Decode.
func Unmarshal(d []byte, opts ...DecodeOption) (attr.Attribute, error) {
	doc, err := ir.FromJSON(d)
	if err != nil {
		return nil, err
	}
	return Decode(doc, opts...)
}

func (ds *decState) decode(doc *ir.Node) (attr.Attribute, error) {
	if doc == nil || doc.Type != ir.ObjectType {
		return nil, errs.New(errs.TypeMismatch, "attribute must be an object, got %s", typeOf(doc))
	}
	typ, err := requireString(doc, "type")
	if err != nil {
		return nil, err
	}
	k, err := kind.Parse(typ)
	if err != nil {
		return nil, errs.Wrap("type", err)
	}
	value := ir.Get(doc, "value")

	var res attr.Attribute
	switch {
	case k == kind.Null:
		if value != nil && value.Type != ir.NullType {
			return nil, errs.Field(errs.TypeMismatch, "value", "expected null, got %s", value.Type)
		}
		res = attr.NewNull()
	case k.IsPrimitive():
		if value == nil {
			return nil, errs.Missing("value")
		}
		res, err = elems[k].atomic(value)
		if err != nil {
			return nil, errs.Wrap("value", err)
		}
	case k == kind.Array:
		res, err = ds.decodeArray(value)
		if err != nil {
			return nil, errs.Wrap("value", err)
		}
	case k == kind.Dictionary:
		res, err = ds.decodeDictionary(value)
		if err != nil {
			return nil, err
		}
	}

	desc, err := optionalString(doc, "description")
	if err != nil {
		return nil, err
	}
	group, err := optionalString(doc, "group")
	if err != nil {
		return nil, err
	}
	res.SetDescription(desc)
	res.SetGroup(group)
	res.SetSummary(ds.summary)
	return res, nil
}

func (ds *decState) decodeArray(value *ir.Node) (attr.Attribute, error) {
	if value == nil {
		return nil, errs.Missing("")
	}
	if value.Type != ir.ObjectType {
		return nil, errs.New(errs.TypeMismatch, "expected object, got %s", value.Type)
	}
	typ, err := requireString(value, "type")
	if err != nil {
		return nil, err
	}
	ek, err := kind.Parse(typ)
	if err != nil {
		return nil, errs.Wrap("type", err)
	}
	ec, ok := elems[ek]
	if !ok {
		return nil, errs.Field(errs.UnrecognizedType, "type", "%q is not an array element type", typ)
	}
	shape, err := decodeShape(ir.Get(value, "shape"))
	if err != nil {
		return nil, errs.Wrap("shape", err)
	}
	data := ir.Get(value, "data")
	if ds.summary && data == nil {
		return ec.summary(shape)
	}
	encoding, err := requireString(value, "encoding")
	if err != nil {
		return nil, err
	}
	if encoding != EncodingBase64 && encoding != EncodingList {
		return nil, errs.Field(errs.UnsupportedEncoding, "encoding", "%q", encoding)
	}
	if data == nil {
		return nil, errs.Missing("data")
	}
	return ec.array(shape, encoding, data)
}

func decodeShape(n *ir.Node) ([]int, error) {
	if n == nil {
		return nil, errs.Missing("")
	}
	if n.Type != ir.ArrayType {
		return nil, errs.New(errs.TypeMismatch, "expected list of integers, got %s", n.Type)
	}
	shape := make([]int, len(n.Values))
	for i, v := range n.Values {
		if !v.IsIntegral() {
			return nil, errs.New(errs.TypeMismatch, "extent %d is %s, not an integer", i, describe(v))
		}
		e, err := v.Int64Value()
		if err != nil || e < 0 || int64(int(e)) != e {
			return nil, errs.New(errs.MalformedArray, "invalid extent %s in dimension %d", describe(v), i)
		}
		shape[i] = int(e)
	}
	if _, err := strided.CheckShape(shape); err != nil {
		return nil, err
	}
	return shape, nil
}

func (ds *decState) decodeDictionary(value *ir.Node) (attr.Attribute, error) {
	res := attr.NewDictionary()
	if value == nil || value.Type == ir.NullType {
		if ds.summary {
			return res, nil
		}
		return nil, errs.Missing("value")
	}
	if value.Type != ir.ObjectType {
		return nil, errs.Field(errs.TypeMismatch, "value", "expected object, got %s", value.Type)
	}
	for i, f := range value.Fields {
		key := f.String
		child := value.Values[i]
		switch child.Type {
		case ir.NullType:
			continue
		case ir.ObjectType:
		default:
			return nil, errs.Field(errs.TypeMismatch, "value."+key, "expected attribute object, got %s", child.Type)
		}
		a, err := ds.decode(child)
		if err != nil {
			return nil, errs.Wrap("value."+key, err)
		}
		res.Set(key, a)
	}
	return res, nil
}

func requireString(doc *ir.Node, field string) (string, error) {
	n := ir.Get(doc, field)
	if n == nil {
		return "", errs.Missing(field)
	}
	if n.Type != ir.StringType {
		return "", errs.Field(errs.TypeMismatch, field, "expected string, got %s", n.Type)
	}
	return n.String, nil
}

func optionalString(doc *ir.Node, field string) (string, error) {
	n := ir.Get(doc, field)
	if n == nil || n.Type == ir.NullType {
		return "", nil
	}
	if n.Type != ir.StringType {
		return "", errs.Field(errs.TypeMismatch, field, "expected string, got %s", n.Type)
	}
	return n.String, nil
}

func typeOf(n *ir.Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Type.String()
}
