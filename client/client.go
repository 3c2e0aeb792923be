// Package client reads nodes of a remote data tree.
//
// A [Client] fetches documents through a [Fetcher] and decodes them with
// the node and codec packages:
//
//	f, err := client.NewHTTP("https://data.example.org/tree", client.WithToken(tok))
//	c := client.New(f)
//	obj, err := c.Report(ctx, "pulse/12345")
//	a, err := c.Full(ctx, "pulse/12345/ip")
//
// The tree is read-only through this package.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/errs"
	"github.com/signadot/datatree/node"
)

type Option func(*Client)

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

type Client struct {
	f   Fetcher
	log *slog.Logger
}

func New(f Fetcher, opts ...Option) *Client {
	c := &Client{f: f, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cleanPath(path string) string {
	return strings.Trim(path, "/")
}

// Report fetches and decodes the report of the node at path.
func (c *Client) Report(ctx context.Context, path string) (node.Object, error) {
	path = cleanPath(path)
	doc, err := c.f.FetchJSON(ctx, path, ModeReport)
	if err != nil {
		return nil, err
	}
	obj, err := node.DecodeReport(doc)
	if err != nil {
		c.log.Warn("undecodable report", "path", path, "error", err)
		return nil, fmt.Errorf("report %s: %w", path, err)
	}
	c.log.Debug("report", "path", path, "branch", obj.IsBranch())
	return obj, nil
}

// Summary fetches the attribute of the leaf at path without bulk data.
func (c *Client) Summary(ctx context.Context, path string) (attr.Attribute, error) {
	return c.object(ctx, path, ModeSummary)
}

// Full fetches the complete attribute of the leaf at path.
func (c *Client) Full(ctx context.Context, path string) (attr.Attribute, error) {
	return c.object(ctx, path, ModeFull)
}

func (c *Client) object(ctx context.Context, path string, mode Mode) (attr.Attribute, error) {
	path = cleanPath(path)
	doc, err := c.f.FetchJSON(ctx, path, mode)
	if err != nil {
		return nil, err
	}
	a, err := node.DecodeObject(doc)
	if err != nil {
		c.log.Warn("undecodable object", "path", path, "mode", mode, "error", err)
		return nil, fmt.Errorf("%s %s: %w", mode, path, err)
	}
	c.log.Debug("object", "path", path, "mode", mode, "type", a.TypeName())
	return a, nil
}

// Put would store a at path.  Writing is not supported.
func (c *Client) Put(ctx context.Context, path string, a attr.Attribute) error {
	return errs.New(errs.UnsupportedOperation, "put %s: the tree is read-only", cleanPath(path))
}

// Copy would copy the node at from to to.  Writing is not supported.
func (c *Client) Copy(ctx context.Context, from, to string) error {
	return errs.New(errs.UnsupportedOperation, "copy %s to %s: the tree is read-only", cleanPath(from), cleanPath(to))
}

// Delete would remove the node at path.  Writing is not supported.
func (c *Client) Delete(ctx context.Context, path string) error {
	return errs.New(errs.UnsupportedOperation, "delete %s: the tree is read-only", cleanPath(path))
}

// Walk visits the node at path and every node below it, depth first,
// branches before leaves.  Leaves are passed by their NodeInfo.  fn
// returning false stops the descent into a branch.
func (c *Client) Walk(ctx context.Context, path string, fn func(path string, obj node.Object) (bool, error)) error {
	path = cleanPath(path)
	obj, err := c.Report(ctx, path)
	if err != nil {
		return err
	}
	descend, err := fn(path, obj)
	if err != nil || !descend {
		return err
	}
	b, ok := obj.(*node.Branch)
	if !ok {
		return nil
	}
	for _, name := range b.Branches {
		if err := c.Walk(ctx, join(path, name), fn); err != nil {
			return err
		}
	}
	for _, l := range b.Leaves {
		leaf := &node.Leaf{Head: node.Header{Info: l}}
		if _, err := fn(join(path, l.Name), leaf); err != nil {
			return err
		}
	}
	return nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "/" + name
}
