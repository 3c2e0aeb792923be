package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/datatree/client"
	"github.com/signadot/datatree/ir"
	"github.com/signadot/datatree/node"
	"github.com/signadot/datatree/query"
	"github.com/signadot/datatree/render"
)

func ls(cfg *LsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Ls.Parse(cc, args)
	if err != nil {
		cfg.Ls.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: ls requires one argument, a node path", cli.ErrUsage)
	}
	var q *query.Query
	if cfg.Where != "" {
		q, err = query.Compile(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	c, err := cfg.client()
	if err != nil {
		return err
	}
	if cfg.Recursive {
		return lsRecursive(cfg, cc, c, args[0], q)
	}
	obj, err := c.Report(cfg.ctx, args[0])
	if err != nil {
		return err
	}
	if b, ok := obj.(*node.Branch); ok && q != nil {
		leaves, err := q.Filter(b.Leaves)
		if err != nil {
			return err
		}
		filtered := *b
		filtered.Leaves = leaves
		obj = &filtered
	}
	return cfg.emit(cc.Out,
		func() (*ir.Node, error) { return node.EncodeReport(obj), nil },
		func(p *render.Printer) error { return p.Object(obj) })
}

// lsRecursive prints one path per line, branches with a trailing slash.
func lsRecursive(cfg *LsConfig, cc *cli.Context, c *client.Client, root string, q *query.Query) error {
	return c.Walk(cfg.ctx, root, func(path string, obj node.Object) (bool, error) {
		if obj.IsBranch() {
			_, err := fmt.Fprintln(cc.Out, path+"/")
			return true, err
		}
		if q != nil {
			ok, err := q.Match(obj.Header().Info)
			if err != nil || !ok {
				return false, err
			}
		}
		_, err := fmt.Fprintln(cc.Out, path)
		return false, err
	})
}
