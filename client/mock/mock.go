// Package mock provides an in-memory client.Fetcher.
package mock

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/client"
	"github.com/signadot/datatree/codec"
	"github.com/signadot/datatree/errs"
	"github.com/signadot/datatree/format"
	"github.com/signadot/datatree/ir"
	"github.com/signadot/datatree/node"
)

// Fetcher serves documents for the reports and attributes added to it.
// It is safe for concurrent use.
type Fetcher struct {
	mu       sync.Mutex
	reports  map[string]*ir.Node
	objects  map[string]attr.Attribute
	requests []string
}

var _ client.Fetcher = (*Fetcher)(nil)

func New() *Fetcher {
	return &Fetcher{
		reports: map[string]*ir.Node{},
		objects: map[string]attr.Attribute{},
	}
}

func key(path string) string {
	return strings.Trim(path, "/")
}

// AddReport makes obj the report of path.
func (f *Fetcher) AddReport(path string, obj node.Object) {
	f.AddReportDoc(path, node.EncodeReport(obj))
}

// AddReportDoc serves doc, unchecked, as the report of path.
func (f *Fetcher) AddReportDoc(path string, doc *ir.Node) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[key(path)] = doc
}

// AddObject makes a the attribute of the leaf at path.  Summary requests
// are answered with its summary encoding.
func (f *Fetcher) AddObject(path string, a attr.Attribute) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key(path)] = a
}

// Requests returns the requests made so far as "mode path".
func (f *Fetcher) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *Fetcher) FetchJSON(ctx context.Context, path string, mode client.Mode) (*ir.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k := key(path)
	f.mu.Lock()
	f.requests = append(f.requests, mode.String()+" "+k)
	report, hasReport := f.reports[k]
	a, hasObject := f.objects[k]
	f.mu.Unlock()

	switch mode {
	case client.ModeReport:
		if hasReport {
			return report.Clone(), nil
		}
	case client.ModeSummary, client.ModeFull:
		if hasObject {
			return node.EncodeObject(a, mode == client.ModeSummary)
		}
	}
	return nil, errs.New(errs.KeyNotFound, "no %s for %q", mode, k)
}

// Seed loads a file mapping node paths to documents:
//
//	{"pulse/1": {"report": <report document>},
//	 "pulse/1/ip": {"report": <report document>, "object": <attribute>}}
//
// JSON, YAML and CBOR files are read according to their suffix.
func (f *Fetcher) Seed(file string) error {
	d, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	doc, err := format.Unmarshal(format.FromSuffix(file), d)
	if err != nil {
		return fmt.Errorf("seed %s: %w", file, err)
	}
	return f.SeedDoc(doc)
}

// SeedDoc loads documents as Seed does from an already parsed document.
func (f *Fetcher) SeedDoc(doc *ir.Node) error {
	if doc.Type != ir.ObjectType {
		return errs.New(errs.TypeMismatch, "seed must be an object, got %s", doc.Type)
	}
	for i, field := range doc.Fields {
		path, entry := field.String, doc.Values[i]
		if r := ir.Get(entry, "report"); r != nil {
			f.AddReportDoc(path, r)
		}
		if o := ir.Get(entry, "object"); o != nil {
			a, err := codec.Decode(o)
			if err != nil {
				return errs.Wrap(path+".object", err)
			}
			f.AddObject(path, a)
		}
	}
	return nil
}
