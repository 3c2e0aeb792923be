package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/datatree/client"
	"github.com/signadot/datatree/config"
	"github.com/signadot/datatree/format"
	"github.com/signadot/datatree/ir"
	"github.com/signadot/datatree/render"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='configuration file (default: user config dir)'"`
	URL        string `cli:"name=url desc='base URL of the data server'"`
	Token      string `cli:"name=token desc='bearer token for the data server'"`
	Verbose    bool   `cli:"name=v desc='log requests to stderr'"`
	Color      bool   `cli:"name=color desc='always color output'"`
	NoColor    bool   `cli:"name=nocolor desc='never color output'"`

	InFormat, OutFormat *format.Format

	Main *cli.Command

	ctx  context.Context
	conf *config.Config
	log  *slog.Logger
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// setup resolves the configuration: file, then environment, then flags.
func (cfg *MainConfig) setup() error {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	cfg.log = newLogger(os.Stderr, level)

	path := cfg.ConfigFile
	var (
		conf *config.Config
		err  error
	)
	if path != "" {
		conf, err = config.Load(path)
	} else if path, err = config.DefaultPath(); err == nil {
		conf, err = config.LoadOrDefault(path)
	} else {
		conf, err = config.Default(), nil
	}
	if err != nil {
		return err
	}
	if err := conf.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	if cfg.URL != "" {
		conf.Server.URL = cfg.URL
	}
	if cfg.Token != "" {
		conf.Server.Token = cfg.Token
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.conf = conf
	cfg.log.Debug("configured", "config", path, "url", conf.Server.URL)
	return nil
}

func (cfg *MainConfig) client() (*client.Client, error) {
	srv := cfg.conf.Server
	if srv.URL == "" {
		return nil, fmt.Errorf("%w: no server URL: use -url, %s or the configuration file", cli.ErrUsage, config.EnvURL)
	}
	f, err := client.NewHTTP(srv.URL,
		client.WithToken(srv.Token),
		client.WithTimeout(srv.Timeout),
		client.WithRetries(srv.Retries),
		client.WithHTTPLogger(cfg.log))
	if err != nil {
		return nil, err
	}
	return client.New(f, client.WithLogger(cfg.log)), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// outFormat returns the document format to write to w, or false when
// w should get a rendered tree.
func (cfg *MainConfig) outFormat(w io.Writer) (format.Format, bool) {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat, true
	}
	if isTerminal(w) {
		return 0, false
	}
	f, err := format.ParseFormat(cfg.conf.Output.Format)
	if err != nil {
		return format.JSONFormat, true
	}
	return f, true
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	switch {
	case cfg.Color:
		return true
	case cfg.NoColor:
		return false
	}
	return cfg.conf.Output.UseColor(isTerminal(w))
}

func (cfg *MainConfig) printer(w io.Writer) *render.Printer {
	return render.New(w, render.Color(cfg.useColor(w)))
}

// emit writes doc in the output format, or calls show when w gets a tree.
func (cfg *MainConfig) emit(w io.Writer, doc func() (*ir.Node, error), show func(*render.Printer) error) error {
	f, ok := cfg.outFormat(w)
	if !ok {
		return show(cfg.printer(w))
	}
	if f.IsBinary() && isTerminal(w) {
		return fmt.Errorf("%w: not writing %s to a terminal", cli.ErrUsage, f)
	}
	d, err := doc()
	if err != nil {
		return err
	}
	var opts []format.Option
	if f.IsJSON() {
		opts = append(opts, format.Indent("  "))
	}
	return format.Write(w, f, d, opts...)
}

type LsConfig struct {
	*MainConfig
	Where     string `cli:"name=where desc='only list leaves matching this expression'"`
	Recursive bool   `cli:"name=r desc='list all nodes below the path'"`

	Ls *cli.Command
}

type GetConfig struct {
	*MainConfig
	Summary bool `cli:"name=s aliases=summary desc='get the summary, without bulk data'"`

	Get *cli.Command
}

type DecodeConfig struct {
	*MainConfig
	Summary bool `cli:"name=s aliases=summary desc='decode attributes as summaries'"`

	Decode *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Merge   bool `cli:"name=merge desc='print a JSON merge patch from a to b'"`
	Changes bool `cli:"name=changes desc='print the changed dictionary paths'"`

	Diff *cli.Command
}
