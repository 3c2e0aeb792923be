// Package query filters node listings with expr-lang predicates.
//
// A predicate sees the fields of one leaf
//
//	name class group version
//
// and must yield a boolean, as in
//
//	class == "signal" && version >= 2 && glob("i*", name)
package query

import (
	"errors"
	"fmt"
	"path"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/datatree/node"
)

var ErrQuery = errors.New("bad query")

// Env is the evaluation environment of a predicate.
type Env struct {
	Name    string `expr:"name"`
	Class   string `expr:"class"`
	Group   string `expr:"group"`
	Version int    `expr:"version"`
}

func envOf(ni node.NodeInfo) Env {
	return Env{Name: ni.Name, Class: ni.Class, Group: ni.Group, Version: ni.Version}
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(Env{}),
		expr.AsBool(),
		expr.Function("glob", func(params ...any) (any, error) {
			return path.Match(params[0].(string), params[1].(string))
		},
			new(func(string, string) bool)),
	}
}

type Query struct {
	src string
	prg *vm.Program
}

// Compile checks src against Env and compiles it.
func Compile(src string) (*Query, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return &Query{src: src, prg: prg}, nil
}

func (q *Query) String() string { return q.src }

func (q *Query) Match(ni node.NodeInfo) (bool, error) {
	res, err := expr.Run(q.prg, envOf(ni))
	if err != nil {
		return false, fmt.Errorf("%w: %q on %s: %w", ErrQuery, q.src, ni.Name, err)
	}
	return res.(bool), nil
}

// Filter returns the leaves matching q, in order.
func (q *Query) Filter(leaves []node.NodeInfo) ([]node.NodeInfo, error) {
	res := []node.NodeInfo{}
	for _, l := range leaves {
		ok, err := q.Match(l)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, l)
		}
	}
	return res, nil
}
