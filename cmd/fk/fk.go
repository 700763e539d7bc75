package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/flatkey-format/go-flatkey/encode"
	"github.com/flatkey-format/go-flatkey/ir"
	"github.com/flatkey-format/go-flatkey/parse"

	"github.com/scott-cotton/cli"
)

func fkMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// mapDocs runs fn over every document in files (stdin when files is
// empty or "-") and writes the results separated by "---" lines.
func mapDocs(cfg *MainConfig, w io.Writer, files []string, fn func(*ir.Node) (*ir.Node, error)) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for i, file := range files {
		if err := mapFileDocs(cfg, w, file, i > 0, fn); err != nil {
			return err
		}
	}
	return nil
}

func mapFileDocs(cfg *MainConfig, w io.Writer, file string, cont bool, fn func(*ir.Node) (*ir.Node, error)) error {
	var (
		f   *os.File
		err error
	)
	if file != "-" {
		f, err = os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
	} else {
		f = os.Stdin
	}
	in, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", file, err)
	}
	docs, err := parse.ParseAll(in)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	for i, doc := range docs {
		res, err := fn(doc)
		if err != nil {
			return fmt.Errorf("%s document %d: %w", file, i, err)
		}
		if cont || i > 0 {
			if _, err := w.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := encode.Encode(res, w, cfg.encOpts(w)...); err != nil {
			return fmt.Errorf("error encoding result %d: %w", i, err)
		}
	}
	return nil
}

// readDoc parses a single document from a file path or "-".
func readDoc(file string) (*ir.Node, error) {
	var (
		f   *os.File
		err error
	)
	if file != "-" {
		f, err = os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
	} else {
		f = os.Stdin
	}
	in, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", file, err)
	}
	node, err := parse.Parse(bytes.TrimSpace(in))
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return node, nil
}
