package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/kind"
	"github.com/signadot/datatree/node"
)

// Printer writes attributes and node reports as indented text trees.
type Printer struct {
	w        io.Writer
	colors   *Colors
	maxElems int
	indent   string
}

type Option func(*Printer)

// Color enables colored output.
func Color(v bool) Option {
	return func(p *Printer) {
		if v {
			p.colors = NewColors()
		} else {
			p.colors = NoColors()
		}
	}
}

// MaxElements bounds how many array elements are shown; n <= 0 shows all.
func MaxElements(n int) Option {
	return func(p *Printer) { p.maxElems = n }
}

func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w, colors: NoColors(), maxElems: 16, indent: "  "}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attribute prints a under the given name, recursing into dictionaries
// in key order.
func (p *Printer) Attribute(name string, a attr.Attribute) error {
	return p.attribute(0, name, a)
}

func (p *Printer) attribute(depth int, name string, a attr.Attribute) error {
	k := a.Kind()
	c := p.colors
	b := &strings.Builder{}
	b.WriteString(strings.Repeat(p.indent, depth))
	b.WriteString(c.Color(k, NameRole, name))
	b.WriteString(c.Color(k, SepRole, ":"))
	b.WriteByte(' ')
	b.WriteString(c.Color(k, TypeRole, typeString(a)))
	if v, ok := p.value(a); ok {
		b.WriteString(c.Color(k, SepRole, " ="))
		b.WriteByte(' ')
		b.WriteString(c.Color(valueKind(a), ValueRole, v))
	}
	b.WriteString(p.meta(a))
	b.WriteByte('\n')
	if _, err := io.WriteString(p.w, b.String()); err != nil {
		return err
	}
	d, ok := attr.As[*attr.Dictionary](a)
	if !ok {
		return nil
	}
	for key, child := range d.All() {
		if err := p.attribute(depth+1, key, child); err != nil {
			return err
		}
	}
	return nil
}

func typeString(a attr.Attribute) string {
	arr, ok := a.(attr.AnyArray)
	if !ok {
		return a.TypeName()
	}
	return fmt.Sprintf("array<%s>%v", arr.ElemKind(), arr.Shape())
}

func valueKind(a attr.Attribute) kind.Kind {
	if arr, ok := a.(attr.AnyArray); ok {
		return arr.ElemKind()
	}
	return a.Kind()
}

func (p *Printer) value(a attr.Attribute) (string, bool) {
	switch x := a.(type) {
	case *attr.String:
		return strconv.Quote(x.Get()), true
	case attr.AnyAtomic:
		return fmt.Sprint(x.Value()), true
	case attr.AnyArray:
		if !x.HasData() {
			return "", false
		}
		return p.elements(x), true
	}
	return "", false
}

func (p *Printer) elements(arr attr.AnyArray) string {
	var parts []string
	n := arr.Len()
	limit := n
	if p.maxElems > 0 && n > p.maxElems {
		limit = p.maxElems
	}
	if s, ok := arr.Elements().([]string); ok {
		for _, v := range s[:limit] {
			parts = append(parts, strconv.Quote(v))
		}
	} else {
		all := strings.Fields(strings.Trim(fmt.Sprint(arr.Elements()), "[]"))
		parts = all[:limit]
	}
	if limit < n {
		parts = append(parts, fmt.Sprintf("... (%d more)", n-limit))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (p *Printer) meta(a attr.Attribute) string {
	var parts []string
	if a.IsSummary() {
		parts = append(parts, "summary")
	}
	if g := a.Group(); g != "" {
		parts = append(parts, "group="+g)
	}
	if d := a.Description(); d != "" {
		parts = append(parts, strconv.Quote(d))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + p.colors.Color(a.Kind(), MetaRole, "("+strings.Join(parts, ", ")+")")
}

// Object prints the header of a node report and, for a branch, its
// children: branches first, marked with a trailing slash.
func (p *Printer) Object(obj node.Object) error {
	h := obj.Header()
	c := p.colors
	name := h.Info.Name
	if name == "" {
		name = "."
	}
	typ := node.TypeLeaf
	if obj.IsBranch() {
		typ = node.TypeBranch
	}
	line := fmt.Sprintf("%s %s %s rev %d/%d %s",
		c.Color(kind.Dictionary, NameRole, name),
		c.Color(kind.Dictionary, TypeRole, typ),
		infoString(h.Info),
		h.Revision.Current, h.Revision.Latest,
		c.Color(kind.Dictionary, MetaRole, h.Time.String()))
	if h.Description != "" {
		line += " " + c.Color(kind.String, ValueRole, strconv.Quote(h.Description))
	}
	if _, err := fmt.Fprintln(p.w, line); err != nil {
		return err
	}
	b, ok := obj.(*node.Branch)
	if !ok {
		return nil
	}
	for _, br := range b.Branches {
		if _, err := fmt.Fprintf(p.w, "%s%s\n", p.indent, c.Color(kind.Dictionary, BranchRole, br+"/")); err != nil {
			return err
		}
	}
	for _, l := range b.Leaves {
		if err := p.Leaf(l); err != nil {
			return err
		}
	}
	return nil
}

// Leaf prints one child leaf line.
func (p *Printer) Leaf(l node.NodeInfo) error {
	_, err := fmt.Fprintf(p.w, "%s%s %s\n", p.indent,
		p.colors.Color(kind.Array, NameRole, l.Name), infoString(l))
	return err
}

func infoString(ni node.NodeInfo) string {
	return fmt.Sprintf("%s/%s v%d", ni.Class, ni.Group, ni.Version)
}
