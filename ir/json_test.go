package ir

import (
	"errors"
	"math"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	tests := []string{
		`null`,
		`true`,
		`-12`,
		`18446744073709551615`,
		`1.5`,
		`"a\"b"`,
		`[]`,
		`{}`,
		`{"type":"uint8","value":8}`,
		`{"z":1,"a":[1,"x",null,{"k":false}]}`,
		`"<tag> & co"`,
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			node, err := FromJSON([]byte(in))
			if err != nil {
				t.Fatal(err)
			}
			out, err := ToJSON(node)
			if err != nil {
				t.Fatal(err)
			}
			if string(out) != in {
				t.Errorf("got %s want %s", out, in)
			}
		})
	}
}

func TestFromJSONNumbers(t *testing.T) {
	node, err := FromJSON([]byte(`[1, 18446744073709551615, -9223372036854775808, 2.25, 1e3]`))
	if err != nil {
		t.Fatal(err)
	}
	if v, err := node.Values[0].Int64Value(); err != nil || v != 1 {
		t.Errorf("got %d %v", v, err)
	}
	if v, err := node.Values[1].Uint64Value(); err != nil || v != math.MaxUint64 {
		t.Errorf("got %d %v", v, err)
	}
	if _, err := node.Values[1].Int64Value(); !errors.Is(err, ErrNumber) {
		t.Errorf("expected ErrNumber, got %v", err)
	}
	if v, err := node.Values[2].Int64Value(); err != nil || v != math.MinInt64 {
		t.Errorf("got %d %v", v, err)
	}
	if _, err := node.Values[2].Uint64Value(); !errors.Is(err, ErrNumber) {
		t.Errorf("expected ErrNumber, got %v", err)
	}
	if v, err := node.Values[3].Float64Value(); err != nil || v != 2.25 {
		t.Errorf("got %g %v", v, err)
	}
	if node.Values[4].IsIntegral() {
		t.Errorf("1e3 should not be integral")
	}
}

func TestFromJSONObjects(t *testing.T) {
	node, err := FromJSON([]byte(`{"b":1,"a":2,"b":3}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(node.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(node.Fields))
	}
	if v, _ := Get(node, "b").Int64Value(); v != 3 {
		t.Errorf("expected later key to win, got %d", v)
	}
	if node.Fields[0].String != "b" {
		t.Errorf("expected document order, got %q first", node.Fields[0].String)
	}
	if Get(node, "a").Path() != "$.a" {
		t.Errorf("got path %s", Get(node, "a").Path())
	}
	if Get(node, "c") != nil {
		t.Errorf("expected nil for missing field")
	}
}

func TestFromJSONErrors(t *testing.T) {
	for _, in := range []string{``, `{`, `[1,]`, `{"a" 1}`, `1 2`, `nul`} {
		if _, err := FromJSON([]byte(in)); !errors.Is(err, ErrParse) {
			t.Errorf("FromJSON(%q) err = %v, want ErrParse", in, err)
		}
	}
}

func TestToJSONNaN(t *testing.T) {
	if _, err := ToJSON(FromFloat(math.NaN())); !errors.Is(err, ErrNumber) {
		t.Errorf("expected ErrNumber, got %v", err)
	}
}

func TestToAny(t *testing.T) {
	node := FromKeyVals([]KeyVal{
		{Key: "n", Val: FromInt(3)},
		{Key: "u", Val: FromUint(math.MaxUint64)},
		{Key: "l", Val: FromSlice([]*Node{FromBool(true), Null()})},
	})
	m, ok := ToAny(node).(map[string]any)
	if !ok {
		t.Fatalf("expected map")
	}
	if m["n"] != int64(3) {
		t.Errorf("n = %#v", m["n"])
	}
	if m["u"] != uint64(math.MaxUint64) {
		t.Errorf("u = %#v", m["u"])
	}
	l := m["l"].([]any)
	if l[0] != true || l[1] != nil {
		t.Errorf("l = %#v", l)
	}
}
