package mock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/client"
	"github.com/signadot/datatree/errs"
	"github.com/signadot/datatree/ir"
	"github.com/signadot/datatree/node"
)

const seed = `{
  "pulse/1": {"report": {"content":"report","type":"branch","object":{
    "class":"folder","group":"default","version":0,"name":"1",
    "timestamp":"2024-01-01T00:00:00","revision":{"current":1,"latest":1},
    "children":{"branches":[],"leaves":[{"class":"signal","group":"mag","version":1,"name":"ip"}]}}}},
  "pulse/1/ip": {"object": {"type":"array","value":{"type":"int16","shape":[3],"encoding":"list","data":[1,2,3]}}}
}`

func TestSeed(t *testing.T) {
	file := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(file, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}
	f := New()
	if err := f.Seed(file); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	rep, err := f.FetchJSON(ctx, "/pulse/1/", client.ModeReport)
	if err != nil {
		t.Fatal(err)
	}
	obj, err := node.DecodeReport(rep)
	if err != nil {
		t.Fatal(err)
	}
	if !obj.IsBranch() {
		t.Error("expected branch")
	}

	sum, err := f.FetchJSON(ctx, "pulse/1/ip", client.ModeSummary)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"content":"object","mode":"summary","object":{"type":"array","value":{"type":"int16","shape":[3]}}}`
	if d, _ := ir.ToJSON(sum); string(d) != want {
		t.Errorf("summary document %s", d)
	}
	full, err := f.FetchJSON(ctx, "pulse/1/ip", client.ModeFull)
	if err != nil {
		t.Fatal(err)
	}
	a, err := node.DecodeObject(full)
	if err != nil {
		t.Fatal(err)
	}
	arr, ok := attr.As[*attr.Array[int16]](a)
	if !ok || !cmp.Equal(arr.Data(), []int16{1, 2, 3}) {
		t.Errorf("got %#v", a)
	}

	if _, err := f.FetchJSON(ctx, "pulse/1/ip", client.ModeReport); !errors.Is(err, errs.ErrKeyNotFound) {
		t.Errorf("missing report: %v", err)
	}
	wantReqs := []string{"report pulse/1", "summary pulse/1/ip", "full pulse/1/ip", "report pulse/1/ip"}
	if diff := cmp.Diff(wantReqs, f.Requests()); diff != "" {
		t.Errorf("requests (-want +got):\n%s", diff)
	}
}

func TestSeedErrors(t *testing.T) {
	f := New()
	if err := f.Seed(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Error("missing file accepted")
	}
	doc, _ := ir.FromJSON([]byte(`{"a":{"object":{"type":"int8","value":300}}}`))
	err := f.SeedDoc(doc)
	var e *errs.Error
	if !errors.As(err, &e) || e.Field != "a.object.value" {
		t.Errorf("err %v", err)
	}
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().FetchJSON(ctx, "x", client.ModeReport); !errors.Is(err, context.Canceled) {
		t.Errorf("err %v", err)
	}
}
