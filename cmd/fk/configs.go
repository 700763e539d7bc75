package main

import (
	"fmt"
	"io"
	"os"

	flatkey "github.com/flatkey-format/go-flatkey"
	"github.com/flatkey-format/go-flatkey/encode"
	"github.com/flatkey-format/go-flatkey/format"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='encode with color'"`
	WireOut bool   `cli:"name=wire desc='output in compact format'"`
	Sep     string `cli:"name=sep desc='flat key separator (default .)'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
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

func (cfg *MainConfig) flatOpts() []flatkey.Option {
	if cfg.Sep == "" {
		return nil
	}
	return []flatkey.Option{flatkey.WithSeparator(cfg.Sep)}
}

// outFormat resolves the output format. Without an explicit choice it
// follows the input format, defaulting to JSON.
func (cfg *MainConfig) outFormat() format.Format {
	var fmat format.Format
	switch {
	case cfg.Y:
		fmat = format.YAMLFormat
	case cfg.J:
		fmat = format.JSONFormat
	case cfg.InFormat != nil:
		fmat = *cfg.InFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	return fmat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type FlattenConfig struct {
	*MainConfig

	Flatten *cli.Command
}

type UnflattenConfig struct {
	*MainConfig

	Unflatten *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type FilterConfig struct {
	*MainConfig
	Invert bool `cli:"name=v desc='keep entries where the expression is false'"`

	Filter *cli.Command
}

type PatchConfig struct {
	*MainConfig
	File bool `cli:"name=f desc='patch arg is a file path'"`
	Flat bool `cli:"name=flat desc='output the patched document flattened'"`

	Patch *cli.Command
}
