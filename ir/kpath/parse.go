package kpath

import (
	"fmt"
	"strconv"
	"strings"
)

// scan modes for Parse. A field step is "open" only in fieldMode; this is
// what distinguishes "[0]" (root index, no leading field) from "a.[0]"
// (empty field between separator and bracket).
const (
	startMode = iota // beginning of key, no step in progress
	fieldMode        // a field step is in progress, possibly empty
	indexMode        // immediately after a ']'
)

// Parse parses a flat key into its step sequence and trailing marker.
//
// The key is scanned left to right: "[" opens an index step whose digits run
// to "]"; "[]" and "{}" are empty-container markers and may only close the
// key; separators delimit (possibly empty) field names; any other text,
// including text directly following a "]", is a field name. The empty key
// parses to a nil step sequence, addressing the root itself.
func Parse(key, sep string) (*KPath, Marker, error) {
	if err := CheckSeparator(sep); err != nil {
		return nil, MarkerNone, err
	}
	var (
		head, tail *KPath
		mode       = startMode
		fieldStart = 0
		i          = 0
	)
	push := func(step *KPath) {
		if head == nil {
			head = step
			tail = step
			return
		}
		tail.Next = step
		tail = step
	}
	pushField := func(name string) {
		s := name
		push(&KPath{Field: &s})
	}
	for i < len(key) {
		switch {
		case strings.HasPrefix(key[i:], sep):
			if mode != indexMode {
				pushField(key[fieldStart:i])
			}
			i += len(sep)
			mode = fieldMode
			fieldStart = i

		case key[i] == '[':
			if mode == fieldMode {
				pushField(key[fieldStart:i])
			}
			j := strings.IndexByte(key[i+1:], ']')
			if j == -1 {
				return nil, MarkerNone, fmt.Errorf("%w: missing ']' in key %q", ErrParse, key)
			}
			tok := key[i+1 : i+1+j]
			if tok == "" {
				if i+2 != len(key) {
					return nil, MarkerNone, fmt.Errorf("%w: marker \"[]\" not at end of key %q", ErrParse, key)
				}
				return head, MarkerEmptyArray, nil
			}
			idx, err := parseIndex(tok)
			if err != nil {
				return nil, MarkerNone, fmt.Errorf("%w in key %q", err, key)
			}
			push(&KPath{Index: &idx})
			i += j + 2
			mode = indexMode

		case key[i] == ']':
			return nil, MarkerNone, fmt.Errorf("%w: unexpected ']' in key %q", ErrParse, key)

		case strings.HasPrefix(key[i:], "{}"):
			if i+2 != len(key) {
				return nil, MarkerNone, fmt.Errorf("%w: marker \"{}\" not at end of key %q", ErrParse, key)
			}
			if mode == fieldMode {
				pushField(key[fieldStart:i])
			}
			return head, MarkerEmptyObject, nil

		default:
			if mode != fieldMode {
				mode = fieldMode
				fieldStart = i
			}
			i++
		}
	}
	if mode == fieldMode {
		pushField(key[fieldStart:])
	}
	return head, MarkerNone, nil
}

func parseIndex(tok string) (int, error) {
	if tok[0] == '-' && allDigits(tok[1:]) {
		return 0, fmt.Errorf("%w: negative array index %q", ErrIndex, tok)
	}
	if !allDigits(tok) {
		return 0, fmt.Errorf("%w: invalid array index %q", ErrParse, tok)
	}
	u, err := strconv.ParseUint(tok, 10, strconv.IntSize-1)
	if err != nil {
		return 0, fmt.Errorf("%w: array index %q out of range", ErrIndex, tok)
	}
	return int(u), nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
