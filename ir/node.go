package ir

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Node is a JSON value.  Objects keep their fields in document order,
// Fields[i] being the (string) key of Values[i].
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String string
	Bool   bool
	// Number holds the literal text of a number which is not an int64,
	// such as a uint64 above math.MaxInt64 or a float with a chosen
	// representation.
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := yv.CloneTo(&Node{})
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := yf.CloneTo(&Node{})
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Fields[i] = dstI
	}
	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

// FromUint creates a number node, keeping the exact value of integers
// which do not fit in an int64.
func FromUint(v uint64) *Node {
	if v <= math.MaxInt64 {
		return FromInt(int64(v))
	}
	return &Node{
		Type:   NumberType,
		Number: strconv.FormatUint(v, 10),
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

// FromNumber creates a number node from a JSON number literal.
func FromNumber(lit string) (*Node, error) {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return FromInt(i), nil
	}
	if _, err := strconv.ParseUint(lit, 10, 64); err == nil {
		return &Node{Type: NumberType, Number: lit}, nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q", ErrParse, lit)
	}
	return &Node{Type: NumberType, Float64: &f, Number: lit}, nil
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// FromMap creates an object with the keys of yMap in sorted order.
func FromMap(yMap map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(yMap))
	kvs := make([]KeyVal, len(keys))
	for i, key := range keys {
		kvs[i] = KeyVal{Key: key, Val: yMap[key]}
	}
	return FromKeyVals(kvs)
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals creates an object with fields in the order of kvs.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, 0, len(kvs))
	res.Values = make([]*Node, 0, len(kvs))
	for i := range kvs {
		res.Set(kvs[i].Key, kvs[i].Val)
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = ""
	}
	return res
}

// Get returns the value of field in the object y, or nil if y is not an
// object or has no such field.
func Get(y *Node, field string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Set replaces the value of field in the object y, or appends field if it
// is not present.
func (y *Node) Set(field string, v *Node) *Node {
	v.Parent = y
	v.ParentField = field
	for i := range y.Fields {
		if y.Fields[i].String == field {
			v.ParentIndex = i
			y.Values[i] = v
			return y
		}
	}
	i := len(y.Fields)
	v.ParentIndex = i
	y.Fields = append(y.Fields, &Node{
		Type:        StringType,
		String:      field,
		Parent:      y,
		ParentIndex: i,
		ParentField: field,
	})
	y.Values = append(y.Values, v)
	return y
}

// Append adds v to the end of the array y.
func (y *Node) Append(v *Node) *Node {
	v.Parent = y
	v.ParentIndex = len(y.Values)
	v.ParentField = ""
	y.Values = append(y.Values, v)
	return y
}

// IsIntegral reports whether a number node holds an integer value.
func (y *Node) IsIntegral() bool {
	if y.Type != NumberType {
		return false
	}
	if y.Int64 != nil {
		return true
	}
	if y.Float64 == nil {
		_, err := strconv.ParseUint(y.Number, 10, 64)
		return err == nil
	}
	return false
}

// Int64Value returns the value of an integral number node.
func (y *Node) Int64Value() (int64, error) {
	if y.Int64 != nil {
		return *y.Int64, nil
	}
	return 0, fmt.Errorf("%w: %s is not an int64", ErrNumber, y.numText())
}

// Uint64Value returns the value of a non-negative integral number node.
func (y *Node) Uint64Value() (uint64, error) {
	if y.Int64 != nil {
		if *y.Int64 < 0 {
			return 0, fmt.Errorf("%w: %d is negative", ErrNumber, *y.Int64)
		}
		return uint64(*y.Int64), nil
	}
	if y.Float64 == nil && y.Number != "" {
		u, err := strconv.ParseUint(y.Number, 10, 64)
		if err == nil {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%w: %s is not a uint64", ErrNumber, y.numText())
}

// Float64Value returns the value of any number node as a float64.
func (y *Node) Float64Value() (float64, error) {
	switch {
	case y.Float64 != nil:
		return *y.Float64, nil
	case y.Int64 != nil:
		return float64(*y.Int64), nil
	case y.Number != "":
		return strconv.ParseFloat(y.Number, 64)
	}
	return 0, fmt.Errorf("%w: empty number", ErrNumber)
}

func (y *Node) numText() string {
	switch {
	case y.Number != "":
		return y.Number
	case y.Int64 != nil:
		return strconv.FormatInt(*y.Int64, 10)
	case y.Float64 != nil:
		return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
	}
	return y.Type.String()
}

// Path returns a JSONPath-style location of y within its root.
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		f := y.ParentField
		prefix := y.Parent.Path() + "."
		if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
			return prefix + f
		}
		return prefix + "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
	case ArrayType:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}
