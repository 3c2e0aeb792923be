package ir

import (
	"cmp"
	"math"
	"math/big"
	"slices"
	"strings"
)

var typeOrder = []Type{NullType, BoolType, NumberType, StringType, ArrayType, ObjectType}

// Compare orders nodes first by type
//
//	null < bool < number < string < array < object
//
// then by value.  Numbers compare exactly across int64, uint64 and float
// representations.  Arrays compare element-wise, objects pairwise by key
// then value in document order; a prefix sorts first.  A nil node sorts
// before any other.
func Compare(a, b *Node) int {
	switch {
	case a == b:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := cmp.Compare(slices.Index(typeOrder, a.Type), slices.Index(typeOrder, b.Type)); c != 0 {
		return c
	}
	switch a.Type {
	case BoolType:
		return cmp.Compare(boolInt(a.Bool), boolInt(b.Bool))
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case ArrayType:
		return slices.CompareFunc(a.Values, b.Values, Compare)
	case ObjectType:
		n := min(len(a.Fields), len(b.Fields))
		for i := range n {
			if c := strings.Compare(a.Fields[i].String, b.Fields[i].String); c != 0 {
				return c
			}
			if c := Compare(a.Values[i], b.Values[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(a.Fields), len(b.Fields))
	}
	return 0
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func compareNumbers(a, b *Node) int {
	x, xok := exact(a)
	y, yok := exact(b)
	if xok && yok {
		return x.Cmp(y)
	}
	af, _ := a.Float64Value()
	bf, _ := b.Float64Value()
	return cmp.Compare(af, bf)
}

// exact returns the value of a number node, unless it is NaN.
func exact(y *Node) (*big.Float, bool) {
	switch {
	case y.Int64 != nil:
		return new(big.Float).SetInt64(*y.Int64), true
	case y.Float64 != nil:
		if math.IsNaN(*y.Float64) {
			return nil, false
		}
		return big.NewFloat(*y.Float64), true
	}
	if u, err := y.Uint64Value(); err == nil {
		return new(big.Float).SetUint64(u), true
	}
	return nil, false
}
