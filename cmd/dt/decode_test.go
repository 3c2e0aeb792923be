package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/format"
	"github.com/signadot/datatree/ir"
)

func TestDecodeDoc(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		summary bool
		report  bool
		kind    string
	}{
		{"bare attribute", `{"type":"int8","value":1}`, false, false, "int8"},
		{"object document", `{"content":"object","mode":"full","object":{"type":"string","value":"x"}}`, false, false, "string"},
		{"summary flag", `{"type":"array","value":{"type":"float32","shape":[4]}}`, true, false, "array"},
		{"report", `{"content":"report","type":"leaf","object":{"class":"c","group":"g","version":1,
		  "timestamp":"2020-01-01T00:00:00","revision":{"current":1,"latest":1}}}`, false, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ir.FromJSON([]byte(tt.doc))
			if err != nil {
				t.Fatal(err)
			}
			obj, a, err := decodeDoc(doc, tt.summary)
			if err != nil {
				t.Fatal(err)
			}
			if tt.report {
				if obj == nil || a != nil {
					t.Fatalf("got %v, %v", obj, a)
				}
				return
			}
			if a == nil || a.TypeName() != tt.kind {
				t.Fatalf("got %v", a)
			}
			if a.IsSummary() != tt.summary {
				t.Errorf("summary %v", a.IsSummary())
			}
		})
	}
	doc, _ := ir.FromJSON([]byte(`{"content":"listing"}`))
	if _, _, err := decodeDoc(doc, false); err == nil {
		t.Error("unknown content accepted")
	}
}

func TestReadDoc(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.yaml")
	if err := os.WriteFile(p, []byte("type: uint16\nvalue: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := readDoc(&MainConfig{}, nil, p)
	if err != nil {
		t.Fatal(err)
	}
	_, a, err := decodeDoc(doc, false)
	if err != nil {
		t.Fatal(err)
	}
	if u, ok := attr.As[*attr.Atomic[uint16]](a); !ok || u.Get() != 7 {
		t.Errorf("got %#v", a)
	}

	f := format.JSONFormat
	doc, err = readDoc(&MainConfig{InFormat: &f}, strings.NewReader(`{"type":"null","value":null}`), "-")
	if err != nil {
		t.Fatal(err)
	}
	if ir.Get(doc, "type").String != "null" {
		t.Errorf("stdin doc %v", ir.ToAny(doc))
	}
}

func TestWriteDiff(t *testing.T) {
	text := "  a\n- b\n+ c\n"
	b := &strings.Builder{}
	if err := writeDiff(b, text, false); err != nil {
		t.Fatal(err)
	}
	if b.String() != text {
		t.Errorf("plain diff altered: %q", b.String())
	}
	b.Reset()
	if err := writeDiff(b, text, true); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "  a\n\x1b[") || !strings.Contains(b.String(), "- b") {
		t.Errorf("colored diff %q", b.String())
	}
}
