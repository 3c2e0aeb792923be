package kind

// Scalar is the set of Go types held by atomic attributes and by numeric
// or boolean arrays.
type Scalar interface {
	bool |
		int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// Element is the set of Go types which may be held in an array.
type Element interface {
	Scalar | string
}

// Of returns the Kind corresponding to the Go type T.
func Of[T Element]() Kind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case string:
		return String
	}
	panic("unreachable")
}
