package flatkey

import (
	"fmt"
	"iter"

	"github.com/flatkey-format/go-flatkey/ir"
)

// FlatMap is an insertion-ordered mapping from flat keys to values. Values
// are leaf nodes (null, bool, number, string) or empty container nodes, which
// stand in as the empty-array and empty-object markers.
//
// The iteration order of a FlatMap produced by Flatten mirrors the
// depth-first visitation order of the source tree.
type FlatMap struct {
	keys   []string
	index  map[string]int
	values []*ir.Node
}

func NewFlatMap() *FlatMap {
	return &FlatMap{index: map[string]int{}}
}

func (m *FlatMap) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *FlatMap) Keys() []string {
	res := make([]string, len(m.keys))
	copy(res, m.keys)
	return res
}

func (m *FlatMap) Get(key string) (*ir.Node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.values[i], true
}

// Set assigns key to val, appending a new entry or replacing an existing
// one in place.
func (m *FlatMap) Set(key string, val *ir.Node) {
	if i, ok := m.index[key]; ok {
		m.values[i] = val
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, val)
}

// All iterates entries in insertion order.
func (m *FlatMap) All() iter.Seq2[string, *ir.Node] {
	return func(yield func(string, *ir.Node) bool) {
		for i, key := range m.keys {
			if !yield(key, m.values[i]) {
				return
			}
		}
	}
}

// Node renders the mapping as a single-level object node with one field
// per entry, in insertion order.
func (m *FlatMap) Node() *ir.Node {
	kvs := make([]ir.KeyVal, len(m.keys))
	for i, key := range m.keys {
		kvs[i] = ir.KeyVal{Key: ir.FromString(key), Val: m.values[i].Clone()}
	}
	return ir.FromKeyVals(kvs)
}

// FlatMapOfNode reads a single-level object node back into a FlatMap.
// Values must be leaves or empty containers.
func FlatMapOfNode(node *ir.Node) (*FlatMap, error) {
	if node == nil || node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: flat document must be an object", ErrStructuralConflict)
	}
	res := NewFlatMap()
	for i := range node.Fields {
		key := node.Fields[i].String
		val := node.Values[i]
		if val == nil {
			return nil, fmt.Errorf("%w: key %q has no value", ErrStructuralConflict, key)
		}
		if !val.Type.IsLeaf() && len(val.Values) != 0 {
			return nil, fmt.Errorf(
				"%w: key %q holds a non-empty %s", ErrStructuralConflict, key, val.Type)
		}
		if _, ok := res.Get(key); ok {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrPathCollision, key)
		}
		res.Set(key, val.Clone())
	}
	return res, nil
}

// Equal reports whether two mappings hold equal entries in the same order.
func (m *FlatMap) Equal(other *FlatMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, key := range m.keys {
		if other.keys[i] != key {
			return false
		}
		if !ir.Equal(m.values[i], other.values[i]) {
			return false
		}
	}
	return true
}
