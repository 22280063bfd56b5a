package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/luamap/debug"
	"github.com/signadot/luamap/encode"
	"github.com/signadot/luamap/gomap"
	"github.com/signadot/luamap/parse"
	"github.com/signadot/luamap/shape"
	"github.com/signadot/luamap/tablediff"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: validate requires a shape file and a type name", cli.ErrUsage)
	}
	set, err := loadSet(args[0])
	if err != nil {
		return err
	}
	typ := args[1]
	if set.Get(shape.ElemType(typ)) == nil && !isBuiltin(typ) {
		return fmt.Errorf("%w: type %q is not declared in %s", cli.ErrUsage, typ, args[0])
	}
	files := args[2:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		d, err := readArg(cc, file)
		if err != nil {
			return err
		}
		if err := cfg.validateOne(cc.Out, set, typ, file, d); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}

// isBuiltin reports whether typ is a builtin type or a list of one.
func isBuiltin(typ string) bool {
	switch shape.ElemType(typ) {
	case shape.TypeAny, shape.TypeBool, shape.TypeNumber, shape.TypeInteger, shape.TypeString, shape.TypeTable:
		return true
	}
	return false
}

func loadSet(file string) (*shape.Set, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sf, err := shape.LoadFile(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", file, err)
	}
	set, errs := shape.ResolveFile(sf)
	if len(errs) != 0 {
		return nil, fmt.Errorf("%s has %d invalid declaration(s), first: %w", file, len(errs), errs[0])
	}
	return set, nil
}

func readArg(cc *cli.Context, arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(cc.In)
	}
	return os.ReadFile(arg)
}

// validateOne checks one input and writes its canonical form, or the
// differences to it.
func (cfg *ValidateConfig) validateOne(w io.Writer, set *shape.Set, typ, name string, d []byte) error {
	node, err := parse.Parse(d, cfg.parseOpts(name)...)
	if err != nil {
		return err
	}
	res, err := gomap.Canonicalize(node, typ, set)
	debug.Logger().Debug("validated", zap.String("input", name), zap.String("type", typ), zap.Error(err))
	if err != nil {
		return err
	}
	if !cfg.Diff {
		return encode.Encode(res, w, cfg.encOpts(w)...)
	}
	paint := map[tablediff.Op]func(...any) string{}
	if cfg.colors(w) {
		paint[tablediff.Added] = color.New(color.FgGreen).SprintFunc()
		paint[tablediff.Removed] = color.New(color.FgRed).SprintFunc()
		paint[tablediff.Changed] = color.New(color.FgYellow).SprintFunc()
	}
	for _, c := range tablediff.Diff(node, res) {
		line := c.String()
		if p := paint[c.Op]; p != nil {
			line = p(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
