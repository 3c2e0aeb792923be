package render

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/node"
)

func TestAttribute(t *testing.T) {
	d := attr.NewDictionary()
	d.Set("shot", attr.NewAtomic[int32](12345))
	s := attr.NewString("ok")
	s.SetDescription("status")
	d.Set("status", s)
	arr, err := attr.ArrayFromData([]float32{1, 2.5, 3, 4}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	arr.SetGroup("magnetics")
	d.Set("ip", arr)
	sum, err := attr.NewArraySummary[uint16](1000)
	if err != nil {
		t.Fatal(err)
	}
	sum.SetSummary(true)
	d.Set("raw", sum)
	d.Set("none", nil)

	b := &strings.Builder{}
	if err := New(b).Attribute("root", d); err != nil {
		t.Fatal(err)
	}
	want := `root: dictionary
  ip: array<float32>[2 2] = [1 2.5 3 4] (group=magnetics)
  none: null
  raw: array<uint16>[1000] (summary)
  shot: int32 = 12345
  status: string = "ok" ("status")
`
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestMaxElements(t *testing.T) {
	arr, err := attr.ArrayFromData([]int8{1, 2, 3, 4, 5}, 5)
	if err != nil {
		t.Fatal(err)
	}
	b := &strings.Builder{}
	if err := New(b, MaxElements(2)).Attribute("a", arr); err != nil {
		t.Fatal(err)
	}
	if want := "a: array<int8>[5] = [1 2 ... (3 more)]\n"; b.String() != want {
		t.Errorf("got %q, want %q", b.String(), want)
	}
}

func TestColorWrapsText(t *testing.T) {
	b := &strings.Builder{}
	if err := New(b, Color(true)).Attribute("x", attr.NewAtomic(true)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "\x1b[") {
		t.Errorf("no escape sequences in %q", b.String())
	}
}

func TestObject(t *testing.T) {
	br := &node.Branch{
		Head: node.Header{
			Info:     node.NodeInfo{Class: "folder", Group: "default", Version: 0, Name: "12345"},
			Time:     node.TimeInfo{LastModified: time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)},
			Revision: node.RevisionInfo{Current: 1, Latest: 2},
		},
		Branches: []string{"ece"},
		Leaves:   []node.NodeInfo{{Class: "signal", Group: "magnetics", Version: 2, Name: "ip"}},
	}
	b := &strings.Builder{}
	if err := New(b).Object(br); err != nil {
		t.Fatal(err)
	}
	want := `12345 branch folder/default v0 rev 1/2 2024-03-01T12:30:45.000000
  ece/
  ip signal/magnetics v2
`
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}
