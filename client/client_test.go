package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/client"
	"github.com/signadot/datatree/client/mock"
	"github.com/signadot/datatree/errs"
	"github.com/signadot/datatree/node"
)

func header(name string) node.Header {
	return node.Header{
		Info:     node.NodeInfo{Class: "folder", Group: "default", Name: name},
		Time:     node.TimeInfo{LastModified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Revision: node.RevisionInfo{Current: 1, Latest: 1, History: []int{}},
	}
}

func tree(t *testing.T) *mock.Fetcher {
	t.Helper()
	f := mock.New()
	f.AddReport("pulse", &node.Branch{
		Head:     header("pulse"),
		Branches: []string{"1"},
		Leaves:   []node.NodeInfo{},
	})
	f.AddReport("pulse/1", &node.Branch{
		Head:     header("1"),
		Branches: []string{},
		Leaves:   []node.NodeInfo{{Class: "signal", Group: "mag", Version: 1, Name: "ip"}},
	})
	arr, err := attr.ArrayFromData([]float64{1, 2, 3, 4}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	f.AddObject("pulse/1/ip", arr)
	return f
}

func TestReport(t *testing.T) {
	c := client.New(tree(t))
	obj, err := c.Report(context.Background(), "/pulse/1")
	if err != nil {
		t.Fatal(err)
	}
	b, ok := obj.(*node.Branch)
	if !ok {
		t.Fatalf("got %T", obj)
	}
	if _, err := b.Leaf("ip"); err != nil {
		t.Error(err)
	}
}

func TestSummaryAndFull(t *testing.T) {
	c := client.New(tree(t))
	ctx := context.Background()
	s, err := c.Summary(ctx, "pulse/1/ip")
	if err != nil {
		t.Fatal(err)
	}
	sa, ok := attr.As[*attr.Array[float64]](s)
	if !ok || sa.HasData() || !sa.IsSummary() {
		t.Fatalf("summary %#v", s)
	}
	if diff := cmp.Diff([]int{2, 2}, sa.Shape()); diff != "" {
		t.Errorf("shape (-want +got):\n%s", diff)
	}
	f, err := c.Full(ctx, "pulse/1/ip")
	if err != nil {
		t.Fatal(err)
	}
	fa, _ := attr.As[*attr.Array[float64]](f)
	if v, err := fa.At(1, 0); err != nil || v != 3 {
		t.Errorf("At(1,0) = %v, %v", v, err)
	}
}

func TestWriteUnsupported(t *testing.T) {
	c := client.New(mock.New())
	ctx := context.Background()
	for name, err := range map[string]error{
		"put":    c.Put(ctx, "a", attr.NewNull()),
		"copy":   c.Copy(ctx, "a", "b"),
		"delete": c.Delete(ctx, "a"),
	} {
		if !errors.Is(err, errs.ErrUnsupportedOperation) {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestWalk(t *testing.T) {
	c := client.New(tree(t))
	var visited []string
	err := c.Walk(context.Background(), "pulse", func(path string, obj node.Object) (bool, error) {
		visited = append(visited, path)
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"pulse", "pulse/1", "pulse/1/ip"}, visited); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestUndecodableReport(t *testing.T) {
	f := mock.New()
	f.AddObject("x", attr.NewNull())
	doc, err := f.FetchJSON(context.Background(), "x", client.ModeFull)
	if err != nil {
		t.Fatal(err)
	}
	f.AddReportDoc("x", doc)
	if _, err := client.New(f).Report(context.Background(), "x"); !errors.Is(err, errs.ErrTypeMismatch) {
		t.Errorf("err %v", err)
	}
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tree/pulse/1/ip" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("content") != "object" || q.Get("mode") != "full" {
			t.Errorf("query %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":"object","mode":"full","object":{"type":"uint8","value":1}}`))
	}))
	defer srv.Close()
	f, err := client.NewHTTP(srv.URL+"/tree", client.WithToken("t"), client.WithRetries(0))
	if err != nil {
		t.Fatal(err)
	}
	a, err := client.New(f).Full(context.Background(), "pulse/1/ip")
	if err != nil {
		t.Fatal(err)
	}
	if u, ok := attr.As[*attr.Atomic[uint8]](a); !ok || u.Get() != 1 {
		t.Errorf("got %#v", a)
	}
	if _, err := f.FetchJSON(context.Background(), "nope", client.ModeReport); err == nil {
		t.Error("expected not found")
	}
}

func TestModeQuery(t *testing.T) {
	if got := client.ModeReport.Query().Encode(); got != "content=report" {
		t.Errorf("report %q", got)
	}
	if got := client.ModeSummary.Query().Encode(); got != "content=object&mode=summary" {
		t.Errorf("summary %q", got)
	}
}
