package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// FromJSON parses a single JSON document.  Object fields keep document
// order; a repeated key replaces the earlier value.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrParse)
	}
	return res, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	switch v := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(v), nil
	case string:
		return FromString(v), nil
	case json.Number:
		return FromNumber(v.String())
	case json.Delim:
		switch v {
		case '{':
			res := &Node{Type: ObjectType}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrParse, err)
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("%w: object key %v", ErrParse, kt)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				res.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParse, err)
			}
			return res, nil
		case '[':
			res := &Node{Type: ArrayType}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				res.Append(val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParse, err)
			}
			return res, nil
		}
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrParse, tok)
}

// ToJSON prints y as compact JSON.
func ToJSON(y *Node) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeJSON(buf, y); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, y *Node) error {
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case NumberType:
		switch {
		case y.Number != "":
			buf.WriteString(y.Number)
		case y.Int64 != nil:
			buf.WriteString(strconv.FormatInt(*y.Int64, 10))
		case y.Float64 != nil:
			f := *y.Float64
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("%w: %v has no JSON representation", ErrNumber, f)
			}
			buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		default:
			return fmt.Errorf("number node at %s has no value", y.Path())
		}
	case StringType:
		writeString(buf, y.String)
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, f := range y.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, f.String)
			buf.WriteByte(':')
			if err := writeJSON(buf, y.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("invalid node type %s", y.Type)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	// Encode terminates with a newline
	buf.Truncate(buf.Len() - 1)
}

// ToAny converts y to plain Go values: nil, bool, int64, uint64, float64,
// string, []any and map[string]any.
func ToAny(y *Node) any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 == nil {
			if u, err := y.Uint64Value(); err == nil {
				return u
			}
		}
		f, _ := y.Float64Value()
		return f
	case StringType:
		return y.String
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f.String] = ToAny(y.Values[i])
		}
		return res
	}
	return nil
}
