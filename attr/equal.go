package attr

import "slices"

// Equal reports whether a and b have the same kind, metadata and value.
// Floats are compared with ==, so NaN values are never equal.
func Equal(a, b Attribute) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if a.Description() != b.Description() || a.Group() != b.Group() || a.IsSummary() != b.IsSummary() {
		return false
	}
	switch av := a.(type) {
	case *Null:
		return true
	case *String:
		return av.Get() == b.(*String).Get()
	case *Dictionary:
		bv := b.(*Dictionary)
		if av.Len() != bv.Len() {
			return false
		}
		for k, x := range av.All() {
			y, err := bv.Get(k)
			if err != nil || !Equal(x, y) {
				return false
			}
		}
		return true
	case AnyAtomic:
		return av.Value() == b.(AnyAtomic).Value()
	case AnyArray:
		bv := b.(AnyArray)
		if av.ElemKind() != bv.ElemKind() || !slices.Equal(av.Shape(), bv.Shape()) {
			return false
		}
		if av.HasData() != bv.HasData() {
			return false
		}
		return elementsEqual(av.Elements(), bv.Elements())
	}
	return false
}

func elementsEqual(a, b any) bool {
	switch x := a.(type) {
	case []bool:
		return slices.Equal(x, b.([]bool))
	case []int8:
		return slices.Equal(x, b.([]int8))
	case []int16:
		return slices.Equal(x, b.([]int16))
	case []int32:
		return slices.Equal(x, b.([]int32))
	case []int64:
		return slices.Equal(x, b.([]int64))
	case []uint8:
		return slices.Equal(x, b.([]uint8))
	case []uint16:
		return slices.Equal(x, b.([]uint16))
	case []uint32:
		return slices.Equal(x, b.([]uint32))
	case []uint64:
		return slices.Equal(x, b.([]uint64))
	case []float32:
		return slices.Equal(x, b.([]float32))
	case []float64:
		return slices.Equal(x, b.([]float64))
	case []string:
		return slices.Equal(x, b.([]string))
	}
	return false
}
