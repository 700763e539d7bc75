package flatkey

import (
	"fmt"
	"strings"

	"github.com/flatkey-format/go-flatkey/ir"
	"github.com/flatkey-format/go-flatkey/ir/kpath"
)

// slotRef addresses a position in the tree under reconstruction: either the
// root (parent == nil) or entry idx of a container node. A position holding
// nil is unset; stepping into it materializes a container, and terminal steps
// fill it with the entry's value.
type slotRef struct {
	parent *ir.Node
	idx    int
	field  string
}

func (s *slotRef) get(root *ir.Node) *ir.Node {
	if s.parent == nil {
		return root
	}
	return s.parent.Values[s.idx]
}

func (s *slotRef) set(root **ir.Node, n *ir.Node) {
	if s.parent == nil {
		n.Parent = nil
		n.ParentIndex = 0
		n.ParentField = ""
		*root = n
		return
	}
	n.Parent = s.parent
	n.ParentIndex = s.idx
	n.ParentField = s.field
	s.parent.Values[s.idx] = n
}

// Unflatten rebuilds the tree a flat mapping encodes, walking entries in the
// mapping's order and validating each key against the structure seen so far.
//
// The empty key (and the bare "{}" and "[]" marker keys) is ambiguous: a bare
// leaf at the root and an empty-named root object field both encode to it. A
// sole entry rebuilds the root form; with other entries present it rebuilds
// the field form.
//
// Failures: ErrParse for a malformed key, ErrIndex for an array index that
// is negative or would leave a gap, ErrPathCollision for a second assignment
// to one position, ErrStructuralConflict for a position used as two
// different kinds or a key stepping into a container a marker entry declared
// empty, and ErrEmptyInput for a mapping with no entries. On error no
// partial tree is returned.
func Unflatten(flat *FlatMap, opts ...Option) (*ir.Node, error) {
	o := getOpts(opts...)
	if err := kpath.CheckSeparator(o.sep); err != nil {
		return nil, err
	}
	if flat == nil || flat.Len() == 0 {
		return nil, fmt.Errorf("%w: cannot infer a root from zero entries", ErrEmptyInput)
	}

	var root *ir.Node
	// Containers declared empty by a marker entry, by identity; a later
	// key descending into one would contradict the marker.
	sealed := map[*ir.Node]string{}
	for key, val := range flat.All() {
		steps, marker, err := kpath.Parse(key, o.sep)
		if err != nil {
			return nil, err
		}
		// A zero-step key binds the root only when it is the sole entry.
		// Alongside other entries it reads as the empty-named field of a
		// root object, which is what flattening such a field produces.
		if steps == nil && flat.Len() > 1 {
			steps = kpath.Field("")
		}
		cur := slotRef{}
		for st := steps; st != nil; st = st.Next {
			switch {
			case st.Field != nil:
				n, err := materialize(&root, &cur, ir.ObjectType, key, sealed)
				if err != nil {
					return nil, err
				}
				fi := -1
				for i := range n.Fields {
					if n.Fields[i].String == *st.Field {
						fi = i
						break
					}
				}
				if fi == -1 {
					fi = len(n.Fields)
					n.Fields = append(n.Fields, &ir.Node{
						Parent:      n,
						ParentIndex: fi,
						ParentField: *st.Field,
						Type:        ir.StringType,
						String:      *st.Field,
					})
					n.Values = append(n.Values, nil)
				}
				cur = slotRef{parent: n, idx: fi, field: *st.Field}

			case st.Index != nil:
				n, err := materialize(&root, &cur, ir.ArrayType, key, sealed)
				if err != nil {
					return nil, err
				}
				i := *st.Index
				if i > len(n.Values) {
					return nil, fmt.Errorf("%w: index %d out of order in key %q (array has %d elements)",
						ErrIndex, i, key, len(n.Values))
				}
				if i == len(n.Values) {
					n.Values = append(n.Values, nil)
				}
				cur = slotRef{parent: n, idx: i}
			}
		}

		target := cur.get(root)
		switch marker {
		case kpath.MarkerEmptyObject:
			if target != nil {
				return nil, fmt.Errorf("%w: key %q targets an already set position", ErrPathCollision, key)
			}
			n := &ir.Node{Type: ir.ObjectType}
			sealed[n] = key
			cur.set(&root, n)
		case kpath.MarkerEmptyArray:
			if target != nil {
				return nil, fmt.Errorf("%w: key %q targets an already set position", ErrPathCollision, key)
			}
			n := &ir.Node{Type: ir.ArrayType}
			sealed[n] = key
			cur.set(&root, n)
		case kpath.MarkerNone:
			if target != nil {
				return nil, fmt.Errorf("%w: key %q targets an already set position", ErrPathCollision, key)
			}
			if val == nil {
				return nil, fmt.Errorf("%w: key %q has no value", ErrStructuralConflict, key)
			}
			if !val.Type.IsLeaf() && len(val.Values) > 0 {
				return nil, fmt.Errorf("%w: value at key %q is a non-empty container", ErrStructuralConflict, key)
			}
			cl := val.Clone()
			if !cl.Type.IsLeaf() {
				sealed[cl] = key
			}
			cur.set(&root, cl)
		}
	}
	return root, nil
}

// materialize returns the container node at cur, creating one of the wanted
// type if the position is unset. A position already holding a different kind
// is a structural conflict.
func materialize(root **ir.Node, cur *slotRef, want ir.Type, key string, sealed map[*ir.Node]string) (*ir.Node, error) {
	n := cur.get(*root)
	if n == nil {
		n = &ir.Node{Type: want}
		cur.set(root, n)
		return n, nil
	}
	if n.Type != want {
		return nil, fmt.Errorf("%w: key %q needs an %s at %q, found %s",
			ErrStructuralConflict, key, strings.ToLower(want.String()), n.KPath(), n.Type)
	}
	if mkey, ok := sealed[n]; ok {
		return nil, fmt.Errorf("%w: key %q enters the container key %q declared empty",
			ErrStructuralConflict, key, mkey)
	}
	return n, nil
}
