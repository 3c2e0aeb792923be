package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format of local files: json/j, yaml/y, cbor/c (default by suffix)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y, cbor/c (default a tree on terminals)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "dt").
		WithSynopsis("dt [opts] command [opts]").
		WithDescription("dt reads nodes and attributes of a remote data tree.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dtMain(cfg, cc, args)
		}).
		WithSubs(
			LsCommand(cfg),
			GetCommand(cfg),
			DecodeCommand(cfg),
			DiffCommand(cfg))
}

func LsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Ls, "ls").
		WithAliases("l", "list").
		WithSynopsis("ls [-r] [-where expr] <path>").
		WithDescription(lsDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ls(cfg, cc, args)
		})
}

const lsDescription = `list the node at a path.

For a branch, ls prints the child branches and leaves.  -where filters
the leaves with an expression over name, class, group and version:

  dt ls -where 'class == "signal" && version >= 2' pulse/12345`

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get [-s] <path>...").
		WithDescription("get the attributes of leaves").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func DecodeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DecodeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Decode, "decode").
		WithAliases("dec").
		WithSynopsis("decode [-s] [files]").
		WithDescription("decode local report, object or attribute documents, reading stdin with no files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return decode(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-merge | -changes] a b").
		WithDescription("diff two attributes, each a local file or a remote leaf path; exits 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diffMain(cfg, cc, args)
		})
}
