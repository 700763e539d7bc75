package flatdiff

import (
	"fmt"
	"strings"

	flatkey "github.com/flatkey-format/go-flatkey"
	"github.com/flatkey-format/go-flatkey/encode"
	"github.com/flatkey-format/go-flatkey/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Add Op = iota
	Delete
	Change
)

func (op Op) String() string {
	switch op {
	case Add:
		return "add"
	case Delete:
		return "delete"
	case Change:
		return "change"
	default:
		return fmt.Sprintf("<op %d>", int(op))
	}
}

// Entry is one flat-key difference between two documents. From is nil for
// Add, To is nil for Delete. For Change entries whose values are both
// multi-line strings, Text holds a line-level refinement of the change.
type Entry struct {
	Op   Op
	Key  string
	From *ir.Node
	To   *ir.Node
	Text []diffpatch.Diff
}

func (e *Entry) String() string {
	switch e.Op {
	case Add:
		return fmt.Sprintf("+ %s: %s", e.Key, encode.MustString(e.To, encode.EncodeWire(true)))
	case Delete:
		return fmt.Sprintf("- %s: %s", e.Key, encode.MustString(e.From, encode.EncodeWire(true)))
	default:
		return fmt.Sprintf("~ %s: %s -> %s",
			e.Key,
			encode.MustString(e.From, encode.EncodeWire(true)),
			encode.MustString(e.To, encode.EncodeWire(true)))
	}
}

// Diff flattens from and to and reports their differences key by key.
// Entries follow document order: deletions and changes in from's order,
// additions in to's order.
func Diff(from, to *ir.Node, opts ...flatkey.Option) ([]Entry, error) {
	fromFlat, err := flatkey.Flatten(from, opts...)
	if err != nil {
		return nil, err
	}
	toFlat, err := flatkey.Flatten(to, opts...)
	if err != nil {
		return nil, err
	}
	return DiffFlat(fromFlat, toFlat), nil
}

// DiffFlat diffs two flat mappings. The key sequences are aligned with a
// rune-mapped sequence diff so unchanged runs stay in order.
func DiffFlat(fromFlat, toFlat *flatkey.FlatMap) []Entry {
	keyMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapKeysTo(keyMap, runeMap, fromFlat)
	toRunes := mapKeysTo(keyMap, runeMap, toFlat)

	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	var res []Entry
	for i := range diffs {
		diff := &diffs[i]
		for _, r := range diff.Text {
			key := runeMap[r]
			switch diff.Type {
			case diffpatch.DiffDelete:
				// A key present on both sides shows up as a delete
				// plus an insert when its position moved; report the
				// value change once, at the delete.
				if toVal, ok := toFlat.Get(key); ok {
					fromVal, _ := fromFlat.Get(key)
					if ent := changeEntry(key, fromVal, toVal); ent != nil {
						res = append(res, *ent)
					}
					continue
				}
				fromVal, _ := fromFlat.Get(key)
				res = append(res, Entry{Op: Delete, Key: key, From: fromVal})
			case diffpatch.DiffInsert:
				if _, ok := fromFlat.Get(key); ok {
					continue
				}
				toVal, _ := toFlat.Get(key)
				res = append(res, Entry{Op: Add, Key: key, To: toVal})
			case diffpatch.DiffEqual:
				fromVal, _ := fromFlat.Get(key)
				toVal, _ := toFlat.Get(key)
				if ent := changeEntry(key, fromVal, toVal); ent != nil {
					res = append(res, *ent)
				}
			}
		}
	}
	return res
}

func changeEntry(key string, from, to *ir.Node) *Entry {
	if ir.Equal(from, to) {
		return nil
	}
	ent := &Entry{Op: Change, Key: key, From: from, To: to}
	if isMultiline(from) && isMultiline(to) {
		ent.Text = lineDiff(from.String, to.String)
	}
	return ent
}

func isMultiline(n *ir.Node) bool {
	return n != nil && n.Type == ir.StringType && strings.Contains(n.String, "\n")
}

func lineDiff(from, to string) []diffpatch.Diff {
	diffCfg := diffpatch.New()
	fromChars, toChars, lines := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffMain(fromChars, toChars, false)
	return diffCfg.DiffCharsToLines(diffs, lines)
}

func mapKeysTo(m map[string]rune, im map[rune]string, flat *flatkey.FlatMap) []rune {
	keys := flat.Keys()
	rs := make([]rune, len(keys))
	for i, k := range keys {
		r, ok := m[k]
		if !ok {
			r = rune(len(m))
			m[k] = r
			im[r] = k
		}
		rs[i] = r
	}
	return rs
}
