package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/luamap/debug"
	"github.com/signadot/luamap/shape"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"
)

var dumpConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: check requires at least one shape file", cli.ErrUsage)
	}
	bad := 0
	for _, arg := range args {
		f, err := os.Open(arg)
		if err != nil {
			return err
		}
		n, err := checkShapes(cc.Out, f, arg, cfg.colors(cc.Out), cfg.Dump)
		f.Close()
		if err != nil {
			return fmt.Errorf("error reading %s: %w", arg, err)
		}
		bad += n
	}
	if bad != 0 {
		return fmt.Errorf("%d invalid declaration(s)", bad)
	}
	return nil
}

// checkShapes resolves the shape file read from r, writes one line per
// declaration to w and returns how many were invalid.
func checkShapes(w io.Writer, r io.Reader, name string, colors, dump bool) (int, error) {
	file, err := shape.LoadFile(r)
	if err != nil {
		return 0, err
	}
	set, errs := shape.ResolveFile(file)
	debug.Logger().Debug("checked shape file",
		zap.String("file", name),
		zap.Int("types", len(file.Types)),
		zap.Int("errors", len(errs)))

	ok, fail := fmt.Sprint, fmt.Sprint
	if colors {
		ok = color.New(color.FgGreen).SprintFunc()
		fail = color.New(color.FgRed).SprintFunc()
	}
	byType := map[string]error{}
	var other []error
	for _, err := range errs {
		var ce *shape.ConfigError
		if errors.As(err, &ce) && ce.Type != "" {
			if _, dup := byType[ce.Type]; !dup {
				byType[ce.Type] = err
				continue
			}
		}
		other = append(other, err)
	}
	for i := range file.Types {
		tn := file.Types[i].Name
		if err, bad := byType[tn]; bad {
			fmt.Fprintf(w, "%s %s: %v\n", fail("error"), tn, err)
			delete(byType, tn)
			continue
		}
		if sh := set.Get(tn); sh != nil {
			fmt.Fprintf(w, "%s %s\n", ok("ok"), tn)
			if dump {
				dumpConfig.Fdump(w, sh)
			}
		}
	}
	for _, err := range other {
		fmt.Fprintf(w, "%s %v\n", fail("error"), err)
	}
	return len(errs), nil
}
