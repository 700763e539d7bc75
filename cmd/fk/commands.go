package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "fk").
		WithSynopsis("fk [opts] command [opts]").
		WithDescription("fk flattens nested documents to flat key-value form and back.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fkMain(cfg, cc, args)
		}).
		WithSubs(
			FlattenCommand(cfg),
			UnflattenCommand(cfg),
			DiffCommand(cfg),
			FilterCommand(cfg),
			PatchCommand(cfg))
}

func FlattenCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FlattenConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("flatten").
		WithAliases("f", "fl").
		WithSynopsis("flatten [files]").
		WithDescription("flatten nested documents to flat key-value objects").
		WithRun(func(cc *cli.Context, args []string) error {
			return flatten(cfg, cc, args)
		})
	cfg.Flatten = cmd
	return cmd
}

func UnflattenCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &UnflattenConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("unflatten").
		WithAliases("u", "un").
		WithSynopsis("unflatten [files]").
		WithDescription("rebuild nested documents from flat key-value objects").
		WithRun(func(cc *cli.Context, args []string) error {
			return unflatten(cfg, cc, args)
		})
	cfg.Unflatten = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff a b").
		WithDescription("diff two documents by flat key").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func FilterCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FilterConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("filter").
		WithAliases("fi").
		WithOpts(opts...).
		WithSynopsis("filter <expr> [files]").
		WithDescription(filterDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return filter(cfg, cc, args)
		})
	cfg.Filter = cmd
	return cmd
}

const filterDescription = `filter flattens documents and keeps the entries for which
an expression holds.

The expression is evaluated per flat entry with two variables:

  key    the flat key (string)
  value  the entry's value (string, bool, number, nil, or empty container)

Examples:

  fk filter 'key startsWith "spec."' app.yaml
  fk filter 'value != nil && key matches "replicas$"' app.yaml`

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p", "pa").
		WithOpts(opts...).
		WithSynopsis("patch [opts] <patchobj> [files]").
		WithDescription("apply an RFC 7386 merge patch to documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}
