package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/signadot/datatree/attr"
	"github.com/signadot/datatree/client"
	"github.com/signadot/datatree/diff"
)

func diffMain(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments", cli.ErrUsage)
	}
	if cfg.Merge && cfg.Changes {
		return fmt.Errorf("%w: -merge and -changes are exclusive", cli.ErrUsage)
	}
	var c *client.Client
	load := func(arg string) (attr.Attribute, error) {
		if _, err := os.Stat(arg); err == nil || arg == "-" {
			doc, err := readDoc(cfg.MainConfig, cc.In, arg)
			if err != nil {
				return nil, err
			}
			obj, a, err := decodeDoc(doc, false)
			if err != nil {
				return nil, err
			}
			if obj != nil {
				return nil, fmt.Errorf("%s is a report, not an attribute", arg)
			}
			return a, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		if c == nil {
			if c, err = cfg.client(); err != nil {
				return nil, err
			}
		}
		return c.Full(cfg.ctx, arg)
	}
	from, err := load(args[0])
	if err != nil {
		return err
	}
	to, err := load(args[1])
	if err != nil {
		return err
	}

	differ := false
	switch {
	case cfg.Merge:
		patch, err := diff.MergePatch(from, to)
		if err != nil {
			return err
		}
		differ = string(patch) != "{}"
		if _, err := fmt.Fprintf(cc.Out, "%s\n", patch); err != nil {
			return err
		}
	case cfg.Changes:
		changes := diff.Changes(from, to)
		differ = len(changes) != 0
		for _, ch := range changes {
			path := ch.Path
			if path == "" {
				path = "."
			}
			if _, err := fmt.Fprintf(cc.Out, "%-8s %s\n", ch.Op, path); err != nil {
				return err
			}
		}
	default:
		text, err := diff.Text(from, to)
		if err != nil {
			return err
		}
		differ = text != ""
		if err := writeDiff(cc.Out, text, cfg.useColor(cc.Out)); err != nil {
			return err
		}
	}
	if differ {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func writeDiff(w io.Writer, text string, colored bool) error {
	if !colored {
		_, err := io.WriteString(w, text)
		return err
	}
	add := color.New(color.FgGreen)
	add.EnableColor()
	del := color.New(color.FgRed)
	del.EnableColor()
	for _, line := range strings.SplitAfter(text, "\n") {
		switch {
		case strings.HasPrefix(line, "+ "):
			line = add.Sprint(strings.TrimSuffix(line, "\n")) + "\n"
		case strings.HasPrefix(line, "- "):
			line = del.Sprint(strings.TrimSuffix(line, "\n")) + "\n"
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
