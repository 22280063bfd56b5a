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
		{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: lua/l, json/j, yaml/y (default from the file extension)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		},
		{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: lua/l, json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "luamap").
		WithSynopsis("luamap [opts] command [opts]").
		WithDescription("luamap checks table shapes and the tables they describe.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return luamapMain(cfg, cc, args)
		}).
		WithSubs(
			CheckCommand(cfg),
			ValidateCommand(cfg),
			SnakeCommand(cfg))
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-dump] <shapes.yaml>...").
		WithDescription("resolve the type declarations of shape files and report configuration errors").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("v", "val").
		WithSynopsis("validate [-diff] <shapes.yaml> <type> [files]").
		WithDescription(validateDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
}

const validateDescription = `validate reads tables and checks them against a declared type.

Each input is decoded with the rules of the type and encoded again; the
result, its canonical form, is printed in the output format. With -diff
the differences between the input and its canonical form are printed
instead.

Inputs are files, or stdin for '-' or when no file is given. The input
format is given by -I, or else by the file extension (.lua, .json,
.yaml, .yml), and is lua otherwise.`

func SnakeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SnakeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Snake, "snake").
		WithSynopsis("snake <name>...").
		WithDescription("print the table key of each variant name").
		WithRun(func(cc *cli.Context, args []string) error {
			return snake(cfg, cc, args)
		})
}
