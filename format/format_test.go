package format

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/datatree/ir"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"j", JSONFormat},
		{"json", JSONFormat},
		{"y", YAMLFormat},
		{"yml", YAMLFormat},
		{"cbor", CBORFormat},
		{"YAML", YAMLFormat},
		{"C", CBORFormat},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("xml: %v", err)
	}
	var f Format
	if err := f.UnmarshalText([]byte("yaml")); err != nil || f != YAMLFormat {
		t.Errorf("UnmarshalText: %v %v", f, err)
	}
	if CBORFormat.String() != "cbor" || !CBORFormat.IsBinary() {
		t.Error("cbor naming")
	}
}

func TestFormatTable(t *testing.T) {
	for _, f := range AllFormats() {
		back, err := ParseFormat(f.String())
		if err != nil || back != f {
			t.Errorf("%v: ParseFormat(String()) = %v, %v", f, back, err)
		}
		if FromSuffix("x"+f.Suffix()) != f {
			t.Errorf("%v: suffix %q does not map back", f, f.Suffix())
		}
		if f.IsBinary() != f.IsCBOR() {
			t.Errorf("%v: IsBinary = %v", f, f.IsBinary())
		}
	}
	bad := Format(len(AllFormats()))
	if bad.Suffix() != "" || bad.IsBinary() {
		t.Errorf("out of range format has suffix %q", bad.Suffix())
	}
	if _, err := bad.MarshalText(); err == nil {
		t.Error("expected error marshaling out of range format")
	}
}

func TestFromSuffix(t *testing.T) {
	for name, want := range map[string]Format{
		"a.json":        JSONFormat,
		"dir/a.yaml":    YAMLFormat,
		"a.yml":         YAMLFormat,
		"a.cbor":        CBORFormat,
		"noext":         JSONFormat,
		"strange.thing": JSONFormat,
	} {
		if got := FromSuffix(name); got != want {
			t.Errorf("FromSuffix(%q) = %v, want %v", name, got, want)
		}
	}
}

const doc = `{"type":"dictionary","value":{"z":{"type":"float64","value":2.5},"a":{"type":"array","value":{"type":"int8","shape":[2],"encoding":"list","data":[-1,2]}},"n":{"type":"null","value":null},"b":{"type":"bool","value":true}}}`

func mustJSON(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := ir.FromJSON([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestJSON(t *testing.T) {
	y := mustJSON(t, doc)
	d, err := Marshal(JSONFormat, y)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != doc {
		t.Errorf("got %s", d)
	}
	d, err = Marshal(JSONFormat, mustJSON(t, `{"a":[1]}`), Indent("  "))
	if err != nil {
		t.Fatal(err)
	}
	if want := "{\n  \"a\": [\n    1\n  ]\n}\n"; string(d) != want {
		t.Errorf("indented: got %q, want %q", d, want)
	}
}

func TestRoundTrip(t *testing.T) {
	y := mustJSON(t, doc)
	for _, f := range AllFormats() {
		t.Run(f.String(), func(t *testing.T) {
			d, err := Marshal(f, y)
			if err != nil {
				t.Fatal(err)
			}
			back, err := Unmarshal(f, d)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(ir.ToAny(y), ir.ToAny(back)); diff != "" {
				t.Errorf("round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestYAMLKeepsKeyOrder(t *testing.T) {
	y := mustJSON(t, `{"zeta":1,"alpha":2,"mid":3}`)
	d, err := Marshal(YAMLFormat, y)
	if err != nil {
		t.Fatal(err)
	}
	z, a, m := bytes.Index(d, []byte("zeta")), bytes.Index(d, []byte("alpha")), bytes.Index(d, []byte("mid"))
	if z < 0 || !(z < a && a < m) {
		t.Errorf("key order lost:\n%s", d)
	}
	back, err := Unmarshal(YAMLFormat, d)
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, f := range back.Fields {
		keys = append(keys, f.String)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, keys); diff != "" {
		t.Errorf("parsed key order (-want +got):\n%s", diff)
	}
}

func TestCBORDeterministic(t *testing.T) {
	a, err := Marshal(CBORFormat, mustJSON(t, `{"b":1,"a":2}`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Marshal(CBORFormat, mustJSON(t, `{"a":2,"b":1}`))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("encodings differ: %x vs %x", a, b)
	}
}

func TestFromAnyRejects(t *testing.T) {
	if _, err := FromAny(struct{}{}); !errors.Is(err, ir.ErrParse) {
		t.Errorf("struct: %v", err)
	}
}
