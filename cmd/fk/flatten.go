package main

import (
	flatkey "github.com/flatkey-format/go-flatkey"
	"github.com/flatkey-format/go-flatkey/ir"

	"github.com/scott-cotton/cli"
)

func flatten(cfg *FlattenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Flatten.Parse(cc, args)
	if err != nil {
		return err
	}
	return mapDocs(cfg.MainConfig, cc.Out, args, func(doc *ir.Node) (*ir.Node, error) {
		flat, err := flatkey.Flatten(doc, cfg.flatOpts()...)
		if err != nil {
			return nil, err
		}
		return flat.Node(), nil
	})
}

func unflatten(cfg *UnflattenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Unflatten.Parse(cc, args)
	if err != nil {
		return err
	}
	return mapDocs(cfg.MainConfig, cc.Out, args, func(doc *ir.Node) (*ir.Node, error) {
		flat, err := flatkey.FlatMapOfNode(doc)
		if err != nil {
			return nil, err
		}
		return flatkey.Unflatten(flat, cfg.flatOpts()...)
	})
}
