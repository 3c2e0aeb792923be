package kind

import (
	"github.com/signadot/datatree/errs"
)

// Kind identifies an attribute kind or an array element kind.
type Kind int

const (
	Null Kind = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	String
	Array
	Dictionary
)

var names = map[Kind]string{
	Null:       "null",
	Bool:       "bool",
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	Uint8:      "uint8",
	Uint16:     "uint16",
	Uint32:     "uint32",
	Uint64:     "uint64",
	Float32:    "float32",
	Float64:    "float64",
	String:     "string",
	Array:      "array",
	Dictionary: "dictionary",
}

var kinds = func() map[string]Kind {
	res := make(map[string]Kind, len(names))
	for k, n := range names {
		res[n] = k
	}
	return res
}()

// String returns the wire name of k.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "<unknown kind>"
}

// Parse returns the Kind with wire name name.
func Parse(name string) (Kind, error) {
	k, ok := kinds[name]
	if !ok {
		return 0, errs.New(errs.UnrecognizedType, "%q", name)
	}
	return k, nil
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := names[k]; !ok {
		return nil, errs.New(errs.UnrecognizedType, "kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, err := Parse(string(d))
	if err != nil {
		return err
	}
	*k = kk
	return nil
}

// Kinds returns all kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		Null, Bool,
		Int8, Int16, Int32, Int64,
		Uint8, Uint16, Uint32, Uint64,
		Float32, Float64,
		String, Array, Dictionary,
	}
}

// IsPrimitive is true for the kinds that may appear as array elements.
func (k Kind) IsPrimitive() bool {
	return k >= Bool && k <= String
}

func (k Kind) IsInteger() bool {
	return k >= Int8 && k <= Uint64
}

func (k Kind) IsSigned() bool {
	return k >= Int8 && k <= Int64
}

func (k Kind) IsFloat() bool {
	return k == Float32 || k == Float64
}

// IsContainer is true for kinds whose summaries omit their payload.
func (k Kind) IsContainer() bool {
	return k == Array || k == Dictionary
}

// Size returns the number of bytes of one element of k in a base64 array
// payload, or 0 for kinds without a fixed size.
func (k Kind) Size() int {
	switch k {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// Bits returns the integer or float width of k, or 0.
func (k Kind) Bits() int {
	if k == Bool {
		return 0
	}
	return k.Size() * 8
}
