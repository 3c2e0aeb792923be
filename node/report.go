package node

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/codec"
	"github.com/signadot/datatree/errs"
	"github.com/signadot/datatree/ir"
)

const (
	ContentReport = "report"
	ContentObject = "object"

	TypeBranch = "branch"
	TypeLeaf   = "leaf"

	ModeSummary = "summary"
	ModeFull    = "full"
)

// Header holds the metadata shared by leaves and branches.
type Header struct {
	Info        NodeInfo
	Time        TimeInfo
	Revision    RevisionInfo
	Description string
	// URL is the request URL the report answered, if the report said.
	URL string
}

// Object is a *Leaf or a *Branch.
type Object interface {
	Header() *Header
	IsBranch() bool
}

// Leaf is a terminal node.  Its data is fetched separately and decoded
// with DecodeObject.
type Leaf struct {
	Head Header
}

func (l *Leaf) Header() *Header { return &l.Head }
func (l *Leaf) IsBranch() bool  { return false }

// Branch is an interior node listing its direct children.
type Branch struct {
	Head Header
	// Branches holds the path names of child branches.
	Branches []string
	// Leaves describes the child leaves.
	Leaves []NodeInfo
}

func (b *Branch) Header() *Header { return &b.Head }
func (b *Branch) IsBranch() bool  { return true }

// Leaf returns the child leaf named name.
func (b *Branch) Leaf(name string) (NodeInfo, error) {
	for _, l := range b.Leaves {
		if l.Name == name {
			return l, nil
		}
	}
	return NodeInfo{}, errs.New(errs.KeyNotFound, "no leaf %q", name)
}

// DecodeReport decodes the report document answering a listing request.
//
//	{"content":"report","type":"branch"|"leaf","request":{"url":...},"object":{...}}
//
// Children of a branch are listed, not decoded further.
func DecodeReport(doc *ir.Node) (Object, error) {
	if doc == nil || doc.Type != ir.ObjectType {
		return nil, errs.New(errs.TypeMismatch, "report must be an object, got %s", typeOf(doc))
	}
	content, err := requireString(doc, "content")
	if err != nil {
		return nil, err
	}
	if content != ContentReport {
		return nil, errs.Field(errs.TypeMismatch, "content", "expected %q, got %q", ContentReport, content)
	}
	typ, err := requireString(doc, "type")
	if err != nil {
		return nil, err
	}
	if typ != TypeBranch && typ != TypeLeaf {
		return nil, errs.Field(errs.UnrecognizedType, "type", "%q is neither %q nor %q", typ, TypeBranch, TypeLeaf)
	}
	obj := ir.Get(doc, "object")
	if obj == nil {
		return nil, errs.Missing("object")
	}
	if obj.Type != ir.ObjectType {
		return nil, errs.Field(errs.TypeMismatch, "object", "expected object, got %s", obj.Type)
	}
	reqURL, err := requestURL(ir.Get(doc, "request"))
	if err != nil {
		return nil, err
	}
	if reqURL != "" {
		obj = obj.Clone()
		obj.Parent = nil
		obj.Set("url", ir.FromString(reqURL))
	}

	head, err := decodeHeader(obj)
	if err != nil {
		return nil, errs.Wrap("object", err)
	}
	if typ == TypeLeaf {
		return &Leaf{Head: head}, nil
	}
	b := &Branch{Head: head}
	if err := b.decodeChildren(ir.Get(obj, "children")); err != nil {
		return nil, errs.Wrap("object.children", err)
	}
	return b, nil
}

// requestURL extracts the URL of the "request" field, which may be the
// URL itself or an object holding it under "url".
func requestURL(req *ir.Node) (string, error) {
	if req == nil {
		return "", nil
	}
	switch req.Type {
	case ir.NullType:
		return "", nil
	case ir.StringType:
		return req.String, nil
	case ir.ObjectType:
		s, err := optionalString(req, "url")
		return s, errs.Wrap("request", err)
	}
	return "", errs.Field(errs.TypeMismatch, "request", "expected object or string, got %s", req.Type)
}

func decodeHeader(obj *ir.Node) (Header, error) {
	var h Header
	if err := h.Info.FromIR(obj); err != nil {
		return h, err
	}
	if err := h.Time.FromIR(obj); err != nil {
		return h, err
	}
	rev := ir.Get(obj, "revision")
	if rev == nil {
		return h, errs.Missing("revision")
	}
	if err := h.Revision.FromIR(rev); err != nil {
		return h, errs.Wrap("revision", err)
	}
	desc, err := optionalString(obj, "description")
	if err != nil {
		return h, err
	}
	h.Description = desc
	u, err := optionalString(obj, "url")
	if err != nil {
		return h, err
	}
	h.URL = u
	return h, nil
}

func (b *Branch) decodeChildren(children *ir.Node) error {
	if children == nil {
		return errs.Missing("")
	}
	if children.Type != ir.ObjectType {
		return errs.New(errs.TypeMismatch, "expected object, got %s", children.Type)
	}
	b.Branches = []string{}
	b.Leaves = []NodeInfo{}
	if br := ir.Get(children, "branches"); br != nil && br.Type != ir.NullType {
		if br.Type != ir.ArrayType {
			return errs.Field(errs.TypeMismatch, "branches", "expected list, got %s", br.Type)
		}
		for i, v := range br.Values {
			if v.Type != ir.StringType {
				return errs.Field(errs.TypeMismatch, "branches["+itoa(i)+"]", "expected string, got %s", v.Type)
			}
			b.Branches = append(b.Branches, v.String)
		}
	}
	if lv := ir.Get(children, "leaves"); lv != nil && lv.Type != ir.NullType {
		if lv.Type != ir.ArrayType {
			return errs.Field(errs.TypeMismatch, "leaves", "expected list, got %s", lv.Type)
		}
		for i, v := range lv.Values {
			var ni NodeInfo
			if err := ni.FromIR(v); err != nil {
				return errs.Wrap("leaves["+itoa(i)+"]", err)
			}
			b.Leaves = append(b.Leaves, ni)
		}
	}
	return nil
}

// EncodeReport produces the report document of obj.
func EncodeReport(obj Object) *ir.Node {
	h := obj.Header()
	body := h.Info.ToIR()
	if h.Description != "" {
		body.Set("description", ir.FromString(h.Description))
	}
	body.Set("revision", h.Revision.ToIR())
	body.Set("timestamp", h.Time.ToIR())
	typ := TypeLeaf
	if b, ok := obj.(*Branch); ok {
		typ = TypeBranch
		branches := make([]*ir.Node, len(b.Branches))
		for i, s := range b.Branches {
			branches[i] = ir.FromString(s)
		}
		leaves := make([]*ir.Node, len(b.Leaves))
		for i, l := range b.Leaves {
			leaves[i] = l.ToIR()
		}
		body.Set("children", ir.FromKeyVals([]ir.KeyVal{
			{Key: "leaves", Val: ir.FromSlice(leaves)},
			{Key: "branches", Val: ir.FromSlice(branches)},
		}))
	}
	res := ir.FromKeyVals([]ir.KeyVal{
		{Key: "content", Val: ir.FromString(ContentReport)},
		{Key: "type", Val: ir.FromString(typ)},
	})
	if h.URL != "" {
		res.Set("request", ir.FromKeyVals([]ir.KeyVal{{Key: "url", Val: ir.FromString(h.URL)}}))
	}
	res.Set("object", body)
	return res
}

// DecodeObject decodes the document answering a value request
//
//	{"content":"object","mode":"summary"|"full","object":<attribute>}
//
// into an attribute.  A "summary" mode decodes with codec.Summary; opts
// are applied after it.
func DecodeObject(doc *ir.Node, opts ...codec.DecodeOption) (attr.Attribute, error) {
	if doc == nil || doc.Type != ir.ObjectType {
		return nil, errs.New(errs.TypeMismatch, "object document must be an object, got %s", typeOf(doc))
	}
	content, err := requireString(doc, "content")
	if err != nil {
		return nil, err
	}
	if content != ContentObject {
		return nil, errs.Field(errs.TypeMismatch, "content", "expected %q, got %q", ContentObject, content)
	}
	mode, err := optionalString(doc, "mode")
	if err != nil {
		return nil, err
	}
	switch mode {
	case "", ModeFull:
	case ModeSummary:
		opts = append([]codec.DecodeOption{codec.Summary(true)}, opts...)
	default:
		return nil, errs.Field(errs.UnrecognizedType, "mode", "%q", mode)
	}
	obj := ir.Get(doc, "object")
	if obj == nil {
		return nil, errs.Missing("object")
	}
	a, err := codec.Decode(obj, opts...)
	if err != nil {
		return nil, errs.Wrap("object", err)
	}
	return a, nil
}

// EncodeObject produces the value document of a, in summary form if
// summary is set.
func EncodeObject(a attr.Attribute, summary bool) (*ir.Node, error) {
	mode := ModeFull
	enc := codec.Encode
	if summary {
		mode = ModeSummary
		enc = codec.EncodeSummary
	}
	body, err := enc(a)
	if err != nil {
		return nil, err
	}
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "content", Val: ir.FromString(ContentObject)},
		{Key: "mode", Val: ir.FromString(mode)},
		{Key: "object", Val: body},
	}), nil
}

func nameFromURL(s string) string {
	if s == "" {
		return ""
	}
	p := s
	if u, err := url.Parse(s); err == nil {
		p = u.Path
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
