package main

import (
	"fmt"

	"github.com/signadot/luamap/shape"

	"github.com/scott-cotton/cli"
)

func snake(cfg *SnakeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Snake.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: snake requires at least one name", cli.ErrUsage)
	}
	for _, arg := range args {
		fmt.Fprintln(cc.Out, shape.SnakeCase(arg))
	}
	return nil
}
