// Package diff compares attributes.
package diff

import (
	"slices"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/codec"
	"github.com/signadot/datatree/format"
	"github.com/signadot/datatree/ir"
)

// Text returns a line diff of the indented JSON encodings of from and to.
// Lines are prefixed "- ", "+ " or "  ".  Text returns "" if the
// encodings are equal.
func Text(from, to attr.Attribute) (string, error) {
	a, err := codec.Encode(from)
	if err != nil {
		return "", err
	}
	b, err := codec.Encode(to)
	if err != nil {
		return "", err
	}
	if ir.Compare(a, b) == 0 {
		return "", nil
	}
	as, err := indented(a)
	if err != nil {
		return "", err
	}
	bs, err := indented(b)
	if err != nil {
		return "", err
	}
	diffCfg := diffpatch.New()
	ca, cb, lines := diffCfg.DiffLinesToChars(as, bs)
	diffs := diffCfg.DiffCharsToLines(diffCfg.DiffMain(ca, cb, false), lines)
	res := &strings.Builder{}
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+ "
		case diffpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			res.WriteString(prefix)
			res.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				res.WriteByte('\n')
			}
		}
	}
	return res.String(), nil
}

func indented(n *ir.Node) (string, error) {
	d, err := format.Marshal(format.JSONFormat, n, format.Indent("  "))
	if err != nil {
		return "", err
	}
	return string(d), nil
}

// MergePatch returns the JSON merge patch (RFC 7386) turning the encoding
// of from into the encoding of to.
func MergePatch(from, to attr.Attribute) ([]byte, error) {
	a, err := codec.Marshal(from)
	if err != nil {
		return nil, err
	}
	b, err := codec.Marshal(to)
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(a, b)
}

// ApplyMergePatch applies a JSON merge patch to the encoding of a and
// decodes the result.
func ApplyMergePatch(a attr.Attribute, patch []byte) (attr.Attribute, error) {
	d, err := codec.Marshal(a)
	if err != nil {
		return nil, err
	}
	res, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, err
	}
	return codec.Unmarshal(res)
}

type Op int

const (
	Added Op = iota
	Removed
	Changed
)

func (o Op) String() string {
	return map[Op]string{Added: "added", Removed: "removed", Changed: "changed"}[o]
}

// Change is one difference found by Changes.  Path joins dictionary keys
// with "."; the empty path is the root.
type Change struct {
	Path string
	Op   Op
}

// Changes lists the differences between from and to, descending into
// dictionaries present on both sides.
func Changes(from, to attr.Attribute) []Change {
	res := []Change{}
	return changes(res, "", from, to)
}

func changes(res []Change, path string, from, to attr.Attribute) []Change {
	fd, fok := attr.As[*attr.Dictionary](from)
	td, tok := attr.As[*attr.Dictionary](to)
	if !fok || !tok {
		if !attr.Equal(from, to) {
			res = append(res, Change{Path: path, Op: Changed})
		}
		return res
	}
	if fd.Description() != td.Description() || fd.Group() != td.Group() {
		res = append(res, Change{Path: path, Op: Changed})
	}
	keys := append(fd.Keys(), td.Keys()...)
	slices.Sort(keys)
	keys = slices.Compact(keys)
	for _, k := range keys {
		p := join(path, k)
		fa, ferr := fd.Get(k)
		ta, terr := td.Get(k)
		switch {
		case ferr != nil:
			res = append(res, Change{Path: p, Op: Added})
		case terr != nil:
			res = append(res, Change{Path: p, Op: Removed})
		default:
			res = changes(res, p, fa, ta)
		}
	}
	return res
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
