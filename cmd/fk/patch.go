package main

import (
	"bytes"
	"fmt"

	flatkey "github.com/flatkey-format/go-flatkey"
	"github.com/flatkey-format/go-flatkey/encode"
	"github.com/flatkey-format/go-flatkey/ir"
	"github.com/flatkey-format/go-flatkey/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch object", cli.ErrUsage)
	}
	var patchNode *ir.Node
	if cfg.File {
		patchNode, err = readDoc(args[0])
	} else {
		patchNode, err = parse.ParseString(args[0])
	}
	if err != nil {
		return err
	}
	patchJSON, err := wireJSON(patchNode)
	if err != nil {
		return err
	}
	return mapDocs(cfg.MainConfig, cc.Out, args[1:], func(doc *ir.Node) (*ir.Node, error) {
		docJSON, err := wireJSON(doc)
		if err != nil {
			return nil, err
		}
		merged, err := jsonpatch.MergePatch(docJSON, patchJSON)
		if err != nil {
			return nil, fmt.Errorf("merge patch failed: %w", err)
		}
		res, err := parse.Parse(merged)
		if err != nil {
			return nil, err
		}
		if !cfg.Flat {
			return res, nil
		}
		flat, err := flatkey.Flatten(res, cfg.flatOpts()...)
		if err != nil {
			return nil, err
		}
		return flat.Node(), nil
	})
}

// wireJSON renders a node as compact JSON for the patch library.
func wireJSON(node *ir.Node) ([]byte, error) {
	var buf bytes.Buffer
	err := encode.Encode(node, &buf, encode.EncodeJSON(), encode.EncodeWire(true))
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}
