package node

import (
	"math"
	"time"

	"github.com/signadot/datatree/errs"
	"github.com/signadot/datatree/ir"
)

// TimeLayout is the format of report timestamps, microseconds included.
// Parsing accepts any number of fractional digits.
const TimeLayout = "2006-01-02T15:04:05.000000"

// NodeInfo identifies a node and its data class.
type NodeInfo struct {
	Class   string
	Group   string
	Version int
	// Name is the display name: the "name" field when present, otherwise
	// the last path segment of the node's URL.
	Name string
}

func (ni *NodeInfo) FromIR(doc *ir.Node) error {
	if doc == nil || doc.Type != ir.ObjectType {
		return errs.New(errs.TypeMismatch, "node info must be an object, got %s", typeOf(doc))
	}
	class, err := requireString(doc, "class")
	if err != nil {
		return err
	}
	group, err := requireString(doc, "group")
	if err != nil {
		return err
	}
	version, err := requireInt(doc, "version")
	if err != nil {
		return err
	}
	name, err := optionalString(doc, "name")
	if err != nil {
		return err
	}
	if name == "" {
		url, err := optionalString(doc, "url")
		if err != nil {
			return err
		}
		name = nameFromURL(url)
	}
	*ni = NodeInfo{Class: class, Group: group, Version: version, Name: name}
	return nil
}

func (ni NodeInfo) ToIR() *ir.Node {
	res := ir.FromKeyVals([]ir.KeyVal{
		{Key: "class", Val: ir.FromString(ni.Class)},
		{Key: "group", Val: ir.FromString(ni.Group)},
		{Key: "version", Val: ir.FromInt(int64(ni.Version))},
	})
	if ni.Name != "" {
		res.Set("name", ir.FromString(ni.Name))
	}
	return res
}

// TimeInfo holds the last modification time of a node.
type TimeInfo struct {
	LastModified time.Time
}

func (ti *TimeInfo) FromIR(doc *ir.Node) error {
	s, err := requireString(doc, "timestamp")
	if err != nil {
		return err
	}
	t, err := ParseTime(s)
	if err != nil {
		return err
	}
	ti.LastModified = t
	return nil
}

// ToIR returns the timestamp string node.
func (ti TimeInfo) ToIR() *ir.Node {
	return ir.FromString(ti.String())
}

func (ti TimeInfo) String() string {
	return ti.LastModified.UTC().Format(TimeLayout)
}

// ParseTime parses a report timestamp as UTC.
func ParseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
	if err != nil {
		return time.Time{}, errs.Field(errs.TypeMismatch, "timestamp", "%q does not match %s", s, TimeLayout)
	}
	return t, nil
}

// RevisionInfo describes the revisions of a node.
type RevisionInfo struct {
	Current int
	Latest  int
	// History lists the revisions in which the node was modified.
	History []int
}

func (ri *RevisionInfo) FromIR(doc *ir.Node) error {
	if doc == nil || doc.Type != ir.ObjectType {
		return errs.New(errs.TypeMismatch, "revision must be an object, got %s", typeOf(doc))
	}
	current, err := requireInt(doc, "current")
	if err != nil {
		return err
	}
	latest, err := requireInt(doc, "latest")
	if err != nil {
		return err
	}
	history := []int{}
	if mod := ir.Get(doc, "modified"); mod != nil && mod.Type != ir.NullType {
		if mod.Type != ir.ArrayType {
			return errs.Field(errs.TypeMismatch, "modified", "expected list of integers, got %s", mod.Type)
		}
		for i, v := range mod.Values {
			r, err := intOf(v)
			if err != nil {
				return errs.Wrap("modified["+itoa(i)+"]", err)
			}
			history = append(history, r)
		}
	}
	*ri = RevisionInfo{Current: current, Latest: latest, History: history}
	return nil
}

func (ri RevisionInfo) ToIR() *ir.Node {
	mod := make([]*ir.Node, len(ri.History))
	for i, r := range ri.History {
		mod[i] = ir.FromInt(int64(r))
	}
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "current", Val: ir.FromInt(int64(ri.Current))},
		{Key: "latest", Val: ir.FromInt(int64(ri.Latest))},
		{Key: "modified", Val: ir.FromSlice(mod)},
	})
}

func requireString(doc *ir.Node, field string) (string, error) {
	n := ir.Get(doc, field)
	if n == nil {
		return "", errs.Missing(field)
	}
	if n.Type != ir.StringType {
		return "", errs.Field(errs.TypeMismatch, field, "expected string, got %s", n.Type)
	}
	return n.String, nil
}

func optionalString(doc *ir.Node, field string) (string, error) {
	n := ir.Get(doc, field)
	if n == nil || n.Type == ir.NullType {
		return "", nil
	}
	if n.Type != ir.StringType {
		return "", errs.Field(errs.TypeMismatch, field, "expected string, got %s", n.Type)
	}
	return n.String, nil
}

func requireInt(doc *ir.Node, field string) (int, error) {
	n := ir.Get(doc, field)
	if n == nil {
		return 0, errs.Missing(field)
	}
	i, err := intOf(n)
	if err != nil {
		return 0, errs.Wrap(field, err)
	}
	return i, nil
}

func intOf(n *ir.Node) (int, error) {
	if !n.IsIntegral() {
		return 0, errs.New(errs.TypeMismatch, "expected integer, got %s", n.Type)
	}
	i, err := n.Int64Value()
	if err != nil || i < math.MinInt || i > math.MaxInt {
		return 0, errs.New(errs.TypeMismatch, "integer out of range")
	}
	return int(i), nil
}

func typeOf(n *ir.Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Type.String()
}
