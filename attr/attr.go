package attr

import (
	"github.com/signadot/datatree/kind"
)

// Attribute is a typed value: one of *Null, *Atomic[T], *String,
// *Array[T] or *Dictionary.  The kind of an Attribute never changes.
type Attribute interface {
	// Kind is the attribute kind: a primitive kind for atomic and string
	// attributes, kind.Array, kind.Dictionary or kind.Null.
	Kind() kind.Kind
	// TypeName is the wire name of Kind.
	TypeName() string

	Description() string
	SetDescription(string)
	// Group classifies the attribute, for example "signal".
	Group() string
	SetGroup(string)
	// IsSummary is true if the attribute was decoded from a summary
	// document.  Summary arrays and dictionaries may lack their payload.
	IsSummary() bool
	SetSummary(bool)

	isAttribute()
}

// Meta holds the metadata common to all attributes.
type Meta struct {
	description string
	group       string
	summary     bool
}

func (m *Meta) Description() string { return m.description }
func (m *Meta) SetDescription(v string) { m.description = v }
func (m *Meta) Group() string { return m.group }
func (m *Meta) SetGroup(v string) { m.group = v }
func (m *Meta) IsSummary() bool { return m.summary }
func (m *Meta) SetSummary(v bool) { m.summary = v }
func (m *Meta) isAttribute() {}

// As returns a as the concrete attribute type A, if a is one.
//
//	if v, ok := attr.As[*attr.Atomic[uint8]](a); ok {
//	    v.Set(1)
//	}
func As[A Attribute](a Attribute) (A, bool) {
	res, ok := a.(A)
	return res, ok
}

// Null is the attribute without a value.
type Null struct {
	Meta
}

func NewNull() *Null {
	return &Null{}
}

func (*Null) Kind() kind.Kind { return kind.Null }
func (*Null) TypeName() string { return kind.Null.String() }

// Atomic holds a single boolean or numeric value.
type Atomic[T kind.Scalar] struct {
	Meta
	value T
}

func NewAtomic[T kind.Scalar](v T) *Atomic[T] {
	return &Atomic[T]{value: v}
}

func (a *Atomic[T]) Kind() kind.Kind { return kind.Of[T]() }
func (a *Atomic[T]) TypeName() string { return a.Kind().String() }
func (a *Atomic[T]) Get() T { return a.value }
func (a *Atomic[T]) Set(v T) { a.value = v }

// Value returns the held value as an any.
func (a *Atomic[T]) Value() any { return a.value }

// AnyAtomic is implemented by every *Atomic[T].
type AnyAtomic interface {
	Attribute
	Value() any
}

// String holds a UTF-8 string.
type String struct {
	Meta
	value string
}

func NewString(v string) *String {
	return &String{value: v}
}

func (*String) Kind() kind.Kind { return kind.String }
func (*String) TypeName() string { return kind.String.String() }
func (s *String) Get() string { return s.value }
func (s *String) Set(v string) { s.value = v }
