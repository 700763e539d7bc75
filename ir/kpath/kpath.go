package kpath

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrParse reports a flat key that does not conform to the key grammar.
	ErrParse = errors.New("parse error")
	// ErrSeparator reports a separator that cannot form unambiguous keys.
	ErrSeparator = errors.New("bad separator")
	// ErrIndex reports an unusable array index: negative, too large, or,
	// during reconstruction, out of sequential order.
	ErrIndex = errors.New("array index")
)

// KPath is a parsed flat key: a linked list of steps, each either an object
// field selection or an array index selection.
//
//   - "a.b" → Field("a"), Field("b")
//   - "a[0].b" → Field("a"), Index(0), Field("b")
//   - "" → nil (the root position itself)
//
// Field names are raw: they are not quoted or escaped in key syntax.
type KPath struct {
	Field *string // object field name; may be empty
	Index *int    // array index, >= 0
	Next  *KPath
}

// Marker is the trailing empty-container tag of a flat key.
// "a[]" marks the array at path "a" as empty; "a{}" does the same for an
// object. A marker may only appear at the very end of a key.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerEmptyArray
	MarkerEmptyObject
)

func (m Marker) String() string {
	switch m {
	case MarkerNone:
		return ""
	case MarkerEmptyArray:
		return "[]"
	case MarkerEmptyObject:
		return "{}"
	}
	return "<unknown marker>"
}

// Field returns a single field step.
func Field(name string) *KPath {
	return &KPath{Field: &name}
}

// Index returns a single index step.
func Index(i int) *KPath {
	return &KPath{Index: &i}
}

// Len returns the number of steps in the path.
func (p *KPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// String encodes the step sequence with the given separator. The first field
// step is written bare; subsequent field steps are preceded by the separator;
// index steps are written as "[i]" with no separator.
func (p *KPath) String(sep string) string {
	buf := bytes.NewBuffer(nil)
	n := 0
	for x := p; x != nil; x = x.Next {
		if x.Field != nil {
			if n > 0 {
				buf.WriteString(sep)
			}
			buf.WriteString(*x.Field)
			n++
			continue
		}
		if x.Index != nil {
			fmt.Fprintf(buf, "[%d]", *x.Index)
			n++
			continue
		}
	}
	return buf.String()
}

// Encode encodes a step sequence plus its trailing marker into a flat key.
func Encode(p *KPath, m Marker, sep string) string {
	return p.String(sep) + m.String()
}

// JoinField appends a field step to an encoded key prefix. hasSteps says
// whether prefix already encodes at least one step: a first field is written
// bare, every later one is preceded by the separator. The distinction cannot
// be read off prefix itself since a lone empty field also encodes to "".
func JoinField(prefix string, hasSteps bool, field, sep string) string {
	if !hasSteps {
		return field
	}
	return prefix + sep + field
}

// JoinIndex appends an index step to an encoded key prefix.
func JoinIndex(prefix string, index int) string {
	return prefix + "[" + strconv.Itoa(index) + "]"
}

// CheckSeparator verifies that sep can be used to form keys: it must be a
// non-empty literal with none of the characters reserved by index and marker
// syntax.
func CheckSeparator(sep string) error {
	if sep == "" {
		return fmt.Errorf("%w: separator is empty", ErrSeparator)
	}
	if strings.ContainsAny(sep, "[]{}") {
		return fmt.Errorf("%w: separator %q contains reserved characters", ErrSeparator, sep)
	}
	return nil
}
