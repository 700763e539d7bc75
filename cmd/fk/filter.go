package main

import (
	"fmt"

	flatkey "github.com/flatkey-format/go-flatkey"
	"github.com/flatkey-format/go-flatkey/gomap"
	"github.com/flatkey-format/go-flatkey/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func filter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: filter requires an expression", cli.ErrUsage)
	}
	program, err := expr.Compile(args[0], expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return fmt.Errorf("bad filter expression %q: %w", args[0], err)
	}
	return mapDocs(cfg.MainConfig, cc.Out, args[1:], func(doc *ir.Node) (*ir.Node, error) {
		flat, err := flatkey.Flatten(doc, cfg.flatOpts()...)
		if err != nil {
			return nil, err
		}
		kept, err := filterFlat(cfg, program, flat)
		if err != nil {
			return nil, err
		}
		return kept.Node(), nil
	})
}

func filterFlat(cfg *FilterConfig, program *vm.Program, flat *flatkey.FlatMap) (*flatkey.FlatMap, error) {
	res := flatkey.NewFlatMap()
	for key, val := range flat.All() {
		goVal, err := gomap.FromIR(val)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out, err := expr.Run(program, map[string]any{
			"key":   key,
			"value": goVal,
		})
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		keep, _ := out.(bool)
		if keep != cfg.Invert {
			res.Set(key, val)
		}
	}
	return res, nil
}
