package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/codec"
	"github.com/signadot/datatree/ir"
	"github.com/signadot/datatree/render"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires at least one leaf path", cli.ErrUsage)
	}
	c, err := cfg.client()
	if err != nil {
		return err
	}
	for _, path := range args {
		fetch := c.Full
		if cfg.Summary {
			fetch = c.Summary
		}
		a, err := fetch(cfg.ctx, path)
		if err != nil {
			return err
		}
		if err := emitAttribute(cfg.MainConfig, cc, path, a); err != nil {
			return fmt.Errorf("error writing %s: %w", path, err)
		}
	}
	return nil
}

func emitAttribute(cfg *MainConfig, cc *cli.Context, name string, a attr.Attribute) error {
	return cfg.emit(cc.Out,
		func() (*ir.Node, error) { return encodeAttribute(a) },
		func(p *render.Printer) error { return p.Attribute(name, a) })
}

// encodeAttribute encodes summaries in summary form.
func encodeAttribute(a attr.Attribute) (*ir.Node, error) {
	if a.IsSummary() {
		return codec.EncodeSummary(a)
	}
	return codec.Encode(a)
}
