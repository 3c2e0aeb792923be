package attr

import (
	"iter"
	"maps"
	"slices"

	"github.com/signadot/datatree/errs"
	"github.com/signadot/datatree/kind"
)

// Dictionary maps unique string keys to attributes it owns.
type Dictionary struct {
	Meta
	entries map[string]Attribute
}

func NewDictionary() *Dictionary {
	return &Dictionary{entries: map[string]Attribute{}}
}

func (*Dictionary) Kind() kind.Kind { return kind.Dictionary }
func (*Dictionary) TypeName() string { return kind.Dictionary.String() }

func (d *Dictionary) Len() int { return len(d.entries) }

func (d *Dictionary) Has(key string) bool {
	_, ok := d.entries[key]
	return ok
}

// Get returns the attribute under key.
func (d *Dictionary) Get(key string) (Attribute, error) {
	a, ok := d.entries[key]
	if !ok {
		return nil, errs.New(errs.KeyNotFound, "%q", key)
	}
	return a, nil
}

// Set stores a under key, replacing any previous entry.  A nil a is
// stored as a Null attribute.
func (d *Dictionary) Set(key string, a Attribute) {
	if a == nil {
		a = NewNull()
	}
	if d.entries == nil {
		d.entries = map[string]Attribute{}
	}
	d.entries[key] = a
}

// Delete removes key, reporting whether it was present.
func (d *Dictionary) Delete(key string) bool {
	_, ok := d.entries[key]
	delete(d.entries, key)
	return ok
}

// Keys returns the keys in sorted order.
func (d *Dictionary) Keys() []string {
	return slices.Sorted(maps.Keys(d.entries))
}

// All iterates over the entries in key order.
func (d *Dictionary) All() iter.Seq2[string, Attribute] {
	return func(yield func(string, Attribute) bool) {
		for _, k := range d.Keys() {
			if !yield(k, d.entries[k]) {
				return
			}
		}
	}
}

// GetAs returns the attribute under key as the concrete type A.
func GetAs[A Attribute](d *Dictionary, key string) (A, error) {
	var zero A
	a, err := d.Get(key)
	if err != nil {
		return zero, err
	}
	res, ok := a.(A)
	if !ok {
		return zero, errs.Field(errs.TypeMismatch, key, "attribute has type %s", a.TypeName())
	}
	return res, nil
}
