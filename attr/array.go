package attr

import (
	"slices"

	"github.com/signadot/datatree/errs"
	"github.com/signadot/datatree/kind"
	"github.com/signadot/datatree/strided"
)

// Array is an N-dimensional row-major array of T.  A summary array carries
// its shape but no elements.
type Array[T kind.Element] struct {
	Meta
	shape []int
	arr   *strided.Array[T]
}

// NewArray allocates a zero-filled array of the given shape.
func NewArray[T kind.Element](shape ...int) (*Array[T], error) {
	arr, err := strided.New[T](shape...)
	if err != nil {
		return nil, err
	}
	return &Array[T]{shape: arr.Shape(), arr: arr}, nil
}

// ArrayFromData creates an array of the given shape holding data in
// row-major order.  The array takes ownership of data.
func ArrayFromData[T kind.Element](data []T, shape ...int) (*Array[T], error) {
	arr, err := strided.FromData(data, shape...)
	if err != nil {
		return nil, err
	}
	return &Array[T]{shape: arr.Shape(), arr: arr}, nil
}

// NewArraySummary creates a summary array: shape and element kind only.
func NewArraySummary[T kind.Element](shape ...int) (*Array[T], error) {
	if _, err := strided.CheckShape(shape); err != nil {
		return nil, err
	}
	res := &Array[T]{shape: slices.Clone(shape)}
	res.SetSummary(true)
	return res, nil
}

func (*Array[T]) Kind() kind.Kind { return kind.Array }
func (*Array[T]) TypeName() string { return kind.Array.String() }
func (*Array[T]) ElemKind() kind.Kind { return kind.Of[T]() }

// Shape returns a copy of the shape.
func (a *Array[T]) Shape() []int { return slices.Clone(a.shape) }

// Strides returns a copy of the row-major strides.
func (a *Array[T]) Strides() []int { return strided.Strides(a.shape) }

func (a *Array[T]) Dims() int { return len(a.shape) }

// Len returns the number of elements described by the shape.
func (a *Array[T]) Len() int { return strided.Size(a.shape) }

// HasData is false for summary arrays.
func (a *Array[T]) HasData() bool { return a.arr != nil }

// Data returns the flat element buffer, shared with the array, or nil for
// a summary array.
func (a *Array[T]) Data() []T {
	if a.arr == nil {
		return nil
	}
	return a.arr.Data()
}

// Elements returns Data as an any.
func (a *Array[T]) Elements() any { return a.Data() }

func (a *Array[T]) noData() error {
	return errs.New(errs.MalformedArray, "summary array of shape %v has no data", a.shape)
}

// At returns the element at idx, checking every index against the shape.
func (a *Array[T]) At(idx ...int) (T, error) {
	if a.arr == nil {
		var zero T
		return zero, a.noData()
	}
	return a.arr.At(idx...)
}

// Ptr returns a pointer to the element at idx.
func (a *Array[T]) Ptr(idx ...int) (*T, error) {
	if a.arr == nil {
		return nil, a.noData()
	}
	return a.arr.Ptr(idx...)
}

// Set sets the element at idx, checking every index against the shape.
func (a *Array[T]) Set(v T, idx ...int) error {
	if a.arr == nil {
		return a.noData()
	}
	return a.arr.Set(v, idx...)
}

// At2 is the unchecked accessor for 2-dimensional arrays.  Like the other
// unchecked accessors it requires HasData.
func (a *Array[T]) At2(row, col int) T { return a.arr.At2(row, col) }

// SetAt2 is the unchecked setter for 2-dimensional arrays.
func (a *Array[T]) SetAt2(row, col int, v T) { a.arr.SetAt2(row, col, v) }

// Flat returns element i of the flat buffer.  The array must have data and
// i must be below Len().
func (a *Array[T]) Flat(i int) T { return a.arr.Flat(i) }

// SetFlat sets element i of the flat buffer.  The array must have data and
// i must be below Len().
func (a *Array[T]) SetFlat(i int, v T) { a.arr.SetFlat(i, v) }

// AnyArray is implemented by every *Array[T].
type AnyArray interface {
	Attribute
	ElemKind() kind.Kind
	Shape() []int
	Len() int
	HasData() bool
	Elements() any
}
