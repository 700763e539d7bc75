package flatkey

import (
	"errors"
	"fmt"

	"github.com/flatkey-format/go-flatkey/ir"
	"github.com/flatkey-format/go-flatkey/ir/kpath"
)

// Lookup resolves a flat key against a tree and returns the node it
// addresses, without flattening. The empty key addresses node itself. A
// trailing "{}" or "[]" marker resolves only when the addressed container is
// empty and of the marker's kind.
//
// Lookup fails with ErrParse for a malformed key, ErrSeparator for an
// unusable separator, ErrNotFound when a step selects a field or element
// the tree does not have, and ErrStructuralConflict when a step enters a
// leaf or the wrong container kind.
func Lookup(node *ir.Node, key string, opts ...Option) (*ir.Node, error) {
	o := getOpts(opts...)
	steps, marker, err := kpath.Parse(key, o.sep)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("%w: nil node", ErrNotFound)
	}
	cur := node
	for st := steps; st != nil; st = st.Next {
		switch {
		case st.Field != nil:
			if cur.Type != ir.ObjectType {
				return nil, lookupConflict(key, cur, "an object")
			}
			next := ir.Get(cur, *st.Field)
			if next == nil {
				return nil, fmt.Errorf("%w: no field %q along key %q", ErrNotFound, *st.Field, key)
			}
			cur = next

		case st.Index != nil:
			if cur.Type != ir.ArrayType {
				return nil, lookupConflict(key, cur, "an array")
			}
			i := *st.Index
			if i >= len(cur.Values) {
				return nil, fmt.Errorf("%w: index %d along key %q exceeds length %d",
					ErrNotFound, i, key, len(cur.Values))
			}
			cur = cur.Values[i]
		}
	}
	switch marker {
	case kpath.MarkerEmptyObject:
		if cur.Type != ir.ObjectType {
			return nil, lookupConflict(key, cur, "an object")
		}
		if len(cur.Values) != 0 {
			return nil, fmt.Errorf("%w: key %q addresses a non-empty object", ErrNotFound, key)
		}
	case kpath.MarkerEmptyArray:
		if cur.Type != ir.ArrayType {
			return nil, lookupConflict(key, cur, "an array")
		}
		if len(cur.Values) != 0 {
			return nil, fmt.Errorf("%w: key %q addresses a non-empty array", ErrNotFound, key)
		}
	}
	return cur, nil
}

// LookupOr is Lookup with a default: when the key does not resolve in the
// tree, def is returned instead of an ErrNotFound or ErrStructuralConflict
// error. Malformed keys and separators still fail.
func LookupOr(node *ir.Node, key string, def *ir.Node, opts ...Option) (*ir.Node, error) {
	res, err := Lookup(node, key, opts...)
	if err == nil {
		return res, nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStructuralConflict) {
		return def, nil
	}
	return nil, err
}

func lookupConflict(key string, at *ir.Node, want string) error {
	return fmt.Errorf("%w: key %q needs %s at %q, found %s",
		ErrStructuralConflict, key, want, at.KPath(), at.Type)
}
