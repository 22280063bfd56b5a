package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/luamap/encode"
	"github.com/signadot/luamap/format"
	"github.com/signadot/luamap/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='output with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`
	Verbose bool `cli:"name=v desc='log shape resolution and conversions to stderr'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

// parseOpts picks the input format: -I, then the file extension, then
// lua.
func (cfg *MainConfig) parseOpts(name string) []parse.ParseOption {
	fmat := format.LuaFormat
	if f, ok := format.FromExt(name); ok {
		fmat = f
	}
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	return []parse.ParseOption{
		parse.ParseFormat(fmat),
		parse.ParseName(name),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var fmat format.Format
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.colors(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colors reports whether output to w is colored: -color when given,
// otherwise whether w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			if opt.Value != nil {
				return false
			}
			break
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type CheckConfig struct {
	*MainConfig
	Dump bool `cli:"name=dump desc='print the resolved shapes'"`

	Check *cli.Command
}

type ValidateConfig struct {
	*MainConfig
	Diff bool `cli:"name=diff desc='print the differences between each input and its canonical form'"`

	Validate *cli.Command
}

type SnakeConfig struct {
	*MainConfig

	Snake *cli.Command
}
