package strided

import (
	"math"
	"slices"

	"github.com/signadot/datatree/errs"
)

// MaxDims is the largest number of indices accepted by the checked
// accessors.
const MaxDims = 10

// Unused marks an index position beyond the dimensionality of an array.
// Trailing Unused indices are ignored by the checked accessors.
const Unused = -1

// Strides returns the row-major strides of shape: the last stride is 1 and
// each other stride is the product of the following extents.
func Strides(shape []int) []int {
	res := make([]int, len(shape))
	step := 1
	for d := len(shape) - 1; d >= 0; d-- {
		res[d] = step
		step *= shape[d]
	}
	return res
}

// Size returns the number of elements of an array with the given shape.
// The empty shape has one element.  Size does not detect overflow; shapes
// from untrusted input go through CheckShape first.
func Size(shape []int) int {
	n := 1
	for _, e := range shape {
		n *= e
	}
	return n
}

// Array is a row-major N-dimensional array over a flat buffer.  The
// strides are always derived from the shape.
type Array[T any] struct {
	shape  []int
	stride []int
	data   []T
}

// New allocates a zeroed array of the given shape.
func New[T any](shape ...int) (*Array[T], error) {
	n, err := CheckShape(shape)
	if err != nil {
		return nil, err
	}
	s := slices.Clone(shape)
	return &Array[T]{
		shape:  s,
		stride: Strides(s),
		data:   make([]T, n),
	}, nil
}

// FromData creates an array of the given shape over data, which must have
// exactly Size(shape) elements.  The array takes ownership of data.
func FromData[T any](data []T, shape ...int) (*Array[T], error) {
	n, err := CheckShape(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, errs.New(errs.MalformedArray, "shape %v needs %d elements, got %d", shape, n, len(data))
	}
	s := slices.Clone(shape)
	return &Array[T]{
		shape:  s,
		stride: Strides(s),
		data:   data,
	}, nil
}

// CheckShape validates shape and returns its element count.  Extents must
// be non-negative and the product of the non-zero extents, which bounds
// every stride, must fit in an int.
func CheckShape(shape []int) (int, error) {
	n, zero := 1, false
	for d, e := range shape {
		switch {
		case e < 0:
			return 0, errs.New(errs.MalformedArray, "negative extent %d in dimension %d of shape %v", e, d, shape)
		case e == 0:
			zero = true
		case n > math.MaxInt/e:
			return 0, errs.New(errs.MalformedArray, "shape %v has too many elements", shape)
		default:
			n *= e
		}
	}
	if zero {
		return 0, nil
	}
	return n, nil
}

// Shape returns a copy of the shape.
func (a *Array[T]) Shape() []int {
	return slices.Clone(a.shape)
}

// Strides returns a copy of the strides.
func (a *Array[T]) Strides() []int {
	return slices.Clone(a.stride)
}

// Dims returns the number of dimensions.
func (a *Array[T]) Dims() int {
	return len(a.shape)
}

// Len returns the number of elements.
func (a *Array[T]) Len() int {
	return len(a.data)
}

// Data returns the flat buffer in row-major order.  The buffer is shared
// with the array.
func (a *Array[T]) Data() []T {
	return a.data
}

// Flat returns element i of the flat buffer without bounds checking
// beyond the one Go performs.
func (a *Array[T]) Flat(i int) T {
	return a.data[i]
}

// SetFlat sets element i of the flat buffer.
func (a *Array[T]) SetFlat(i int, v T) {
	a.data[i] = v
}

// Offset returns the flat index addressed by idx.  At most MaxDims indices
// are accepted; trailing Unused indices are ignored, and the remaining
// indices must number exactly Dims() and lie within the shape.
func (a *Array[T]) Offset(idx ...int) (int, error) {
	if len(idx) > MaxDims {
		return 0, errs.New(errs.IndexOutOfRange, "%d indices exceeds the maximum of %d", len(idx), MaxDims)
	}
	n := len(idx)
	for n > 0 && idx[n-1] == Unused {
		n--
	}
	if n != len(a.shape) {
		return 0, errs.New(errs.IndexOutOfRange, "index %v has %d dimensions, array has %d", idx[:n], n, len(a.shape))
	}
	off := 0
	for d := 0; d < n; d++ {
		i := idx[d]
		if i < 0 || i >= a.shape[d] {
			return 0, errs.New(errs.IndexOutOfRange, "index %v outside shape %v in dimension %d", idx[:n], a.shape, d)
		}
		off += i * a.stride[d]
	}
	return off, nil
}

// At returns the element at idx, checking bounds.
func (a *Array[T]) At(idx ...int) (T, error) {
	off, err := a.Offset(idx...)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.data[off], nil
}

// Ptr returns a pointer to the element at idx, checking bounds.
func (a *Array[T]) Ptr(idx ...int) (*T, error) {
	off, err := a.Offset(idx...)
	if err != nil {
		return nil, err
	}
	return &a.data[off], nil
}

// Set sets the element at idx, checking bounds.
func (a *Array[T]) Set(v T, idx ...int) error {
	off, err := a.Offset(idx...)
	if err != nil {
		return err
	}
	a.data[off] = v
	return nil
}

// At2 returns element (row, col) of a 2-dimensional array.  It performs no
// bounds checking: an index outside the shape either panics or addresses
// some other element.
func (a *Array[T]) At2(row, col int) T {
	return a.data[row*a.stride[0]+col]
}

// SetAt2 is the unchecked setter corresponding to At2.
func (a *Array[T]) SetAt2(row, col int, v T) {
	a.data[row*a.stride[0]+col] = v
}

// Index returns the multi-index of flat offset off.
func (a *Array[T]) Index(off int) []int {
	res := make([]int, len(a.shape))
	for d, s := range a.stride {
		if s == 0 {
			continue
		}
		res[d] = off / s
		off %= s
	}
	return res
}
