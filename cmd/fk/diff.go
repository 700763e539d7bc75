package main

import (
	"fmt"
	"strings"

	"github.com/flatkey-format/go-flatkey/flatdiff"

	"github.com/scott-cotton/cli"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff takes exactly two documents", cli.ErrUsage)
	}
	from, err := readDoc(args[0])
	if err != nil {
		return err
	}
	to, err := readDoc(args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		from, to = to, from
	}
	entries, err := flatdiff.Diff(from, to, cfg.flatOpts()...)
	if err != nil {
		return err
	}
	for i := range entries {
		ent := &entries[i]
		fmt.Fprintln(cc.Out, ent.String())
		for _, d := range ent.Text {
			writeLineDiff(cc, &d)
		}
	}
	return nil
}

func writeLineDiff(cc *cli.Context, d *diffpatch.Diff) {
	var prefix string
	switch d.Type {
	case diffpatch.DiffDelete:
		prefix = "  - "
	case diffpatch.DiffInsert:
		prefix = "  + "
	default:
		prefix = "    "
	}
	for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
		fmt.Fprintf(cc.Out, "%s%s\n", prefix, line)
	}
}
