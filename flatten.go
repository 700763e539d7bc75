package flatkey

import (
	"fmt"

	"github.com/flatkey-format/go-flatkey/ir"
	"github.com/flatkey-format/go-flatkey/ir/kpath"
)

// flattenFrame is one unit of work for the iterative traversal: a node, its
// encoded key so far, and the step sequence behind the key. Containers are
// visited twice; the second, leave visit retires the node from the ancestor
// set.
type flattenFrame struct {
	node  *ir.Node
	key   string
	path  *revPath
	leave bool
}

// revPath is the path to a frame's node as a reversed linked list, shared
// structurally with the parent frames. It records the true step sequence so
// emitted keys can be checked against what they re-parse to.
type revPath struct {
	prev  *revPath
	field *string
	index *int
}

// Flatten walks node depth-first and produces the flat mapping from encoded
// keys to leaf values. Empty containers appear as marker entries ("p{}",
// "p[]"); a bare leaf at the root appears under the empty key. The traversal
// is iterative, so depth is bounded by memory rather than the call stack.
//
// Every emitted key is checked to re-parse to the step sequence that
// produced it, so field names containing separator, bracket, or marker text
// cannot silently decode as a different path. The empty field name is the
// one sanctioned exception: at the root it shares its key with the bare
// root value.
//
// Flatten fails with ErrCycle when a container contains itself, with
// ErrPathCollision when two distinct positions encode to the same key or a
// key decodes to a different path, with an ErrParse-classed error for a
// field name whose key form cannot be parsed at all, and with ErrSeparator
// for an unusable separator. On error no partial mapping is returned.
func Flatten(node *ir.Node, opts ...Option) (*FlatMap, error) {
	o := getOpts(opts...)
	if err := kpath.CheckSeparator(o.sep); err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("%w: nil node", ErrStructuralConflict)
	}

	res := NewFlatMap()
	// Containers currently on the path from the root, by identity. Two
	// structurally equal but distinct containers are not a cycle.
	ancestors := map[*ir.Node]string{}
	stack := []flattenFrame{{node: node}}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if fr.leave {
			delete(ancestors, fr.node)
			continue
		}
		n := fr.node
		switch n.Type {
		case ir.NullType, ir.BoolType, ir.NumberType, ir.StringType:
			if err := emit(res, fr.key, n.Clone(), fr.path, kpath.MarkerNone, o.sep); err != nil {
				return nil, err
			}

		case ir.ObjectType:
			if len(n.Values) == 0 {
				err := emit(res, fr.key+"{}", &ir.Node{Type: ir.ObjectType},
					fr.path, kpath.MarkerEmptyObject, o.sep)
				if err != nil {
					return nil, err
				}
				continue
			}
			if prior, ok := ancestors[n]; ok {
				return nil, cycleErr(fr.key, prior)
			}
			ancestors[n] = fr.key
			stack = append(stack, flattenFrame{node: n, leave: true})
			// Children go on the stack in reverse so they pop in
			// insertion order.
			for i := len(n.Fields) - 1; i >= 0; i-- {
				name := n.Fields[i].String
				stack = append(stack, flattenFrame{
					node: n.Values[i],
					key:  kpath.JoinField(fr.key, fr.path != nil, name, o.sep),
					path: &revPath{prev: fr.path, field: &name},
				})
			}

		case ir.ArrayType:
			if len(n.Values) == 0 {
				err := emit(res, fr.key+"[]", &ir.Node{Type: ir.ArrayType},
					fr.path, kpath.MarkerEmptyArray, o.sep)
				if err != nil {
					return nil, err
				}
				continue
			}
			if prior, ok := ancestors[n]; ok {
				return nil, cycleErr(fr.key, prior)
			}
			ancestors[n] = fr.key
			stack = append(stack, flattenFrame{node: n, leave: true})
			for i := len(n.Values) - 1; i >= 0; i-- {
				idx := i
				stack = append(stack, flattenFrame{
					node: n.Values[i],
					key:  kpath.JoinIndex(fr.key, i),
					path: &revPath{prev: fr.path, index: &idx},
				})
			}

		default:
			return nil, fmt.Errorf("%w: node of type %s at key %q", ErrStructuralConflict, n.Type, fr.key)
		}
	}
	return res, nil
}

func emit(res *FlatMap, key string, val *ir.Node, path *revPath, marker kpath.Marker, sep string) error {
	if _, ok := res.Get(key); ok {
		return fmt.Errorf("%w: two values encode to key %q", ErrPathCollision, key)
	}
	if err := checkKey(key, path, marker, sep); err != nil {
		return err
	}
	res.Set(key, val)
	return nil
}

// checkKey verifies that key decodes back to the path and marker that
// produced it. Without this, a field name like "b[0]" or "a.b" would flatten
// without error and unflatten into a different tree.
func checkKey(key string, path *revPath, marker kpath.Marker, sep string) error {
	parsed, m, err := kpath.Parse(key, sep)
	if err != nil {
		return fmt.Errorf("field name makes key %q unparseable: %w", key, err)
	}
	if !pathMatches(parsed, m, path, marker) {
		return fmt.Errorf("%w: key %q decodes to a different path", ErrPathCollision, key)
	}
	return nil
}

func pathMatches(parsed *kpath.KPath, parsedMarker kpath.Marker, path *revPath, marker kpath.Marker) bool {
	if parsedMarker != marker {
		return false
	}
	var steps []*revPath
	for p := path; p != nil; p = p.prev {
		steps = append(steps, p)
	}
	if parsed == nil {
		// A zero-step key covers the root itself and, by the
		// documented exception, a lone empty-named root field.
		if len(steps) == 0 {
			return true
		}
		return len(steps) == 1 && steps[0].field != nil && *steps[0].field == ""
	}
	i := len(steps) - 1
	for st := parsed; st != nil; st = st.Next {
		if i < 0 {
			return false
		}
		rs := steps[i]
		switch {
		case st.Field != nil:
			if rs.field == nil || *rs.field != *st.Field {
				return false
			}
		case st.Index != nil:
			if rs.index == nil || *rs.index != *st.Index {
				return false
			}
		}
		i--
	}
	return i < 0
}

func cycleErr(key, prior string) error {
	if prior == "" {
		return fmt.Errorf("%w: container at key %q contains the root", ErrCycle, key)
	}
	return fmt.Errorf("%w: container at key %q is already on the path at %q", ErrCycle, key, prior)
}
