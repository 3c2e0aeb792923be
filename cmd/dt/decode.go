package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/codec"
	"github.com/signadot/datatree/format"
	"github.com/signadot/datatree/ir"
	"github.com/signadot/datatree/node"
	"github.com/signadot/datatree/render"
)

func decode(cfg *DecodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Decode.Parse(cc, args)
	if err != nil {
		cfg.Decode.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := decodeArg(cfg, cc, arg); err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
	}
	return nil
}

func decodeArg(cfg *DecodeConfig, cc *cli.Context, arg string) error {
	doc, err := readDoc(cfg.MainConfig, cc.In, arg)
	if err != nil {
		return err
	}
	obj, a, err := decodeDoc(doc, cfg.Summary)
	if err != nil {
		return err
	}
	if obj != nil {
		return cfg.emit(cc.Out,
			func() (*ir.Node, error) { return node.EncodeReport(obj), nil },
			func(p *render.Printer) error { return p.Object(obj) })
	}
	return emitAttribute(cfg.MainConfig, cc, arg, a)
}

// readDoc parses a local file, or stdin for "-".
func readDoc(cfg *MainConfig, stdin io.Reader, arg string) (*ir.Node, error) {
	var (
		d   []byte
		err error
	)
	f := format.JSONFormat
	if arg == "-" {
		d, err = io.ReadAll(stdin)
	} else {
		f = format.FromSuffix(arg)
		d, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, err
	}
	if cfg.InFormat != nil {
		f = *cfg.InFormat
	}
	return format.Unmarshal(f, d)
}

// decodeDoc decodes a report, an object document or a bare attribute,
// telling them apart by their "content" field.
func decodeDoc(doc *ir.Node, summary bool) (node.Object, attr.Attribute, error) {
	var opts []codec.DecodeOption
	if summary {
		opts = append(opts, codec.Summary(true))
	}
	content := ir.Get(doc, "content")
	if content == nil || content.Type != ir.StringType {
		a, err := codec.Decode(doc, opts...)
		return nil, a, err
	}
	switch content.String {
	case node.ContentReport:
		obj, err := node.DecodeReport(doc)
		return obj, nil, err
	case node.ContentObject:
		a, err := node.DecodeObject(doc, opts...)
		return nil, a, err
	}
	return nil, nil, fmt.Errorf("unknown content %q", content.String)
}
