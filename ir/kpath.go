package ir

import "strconv"

// KPath returns the flat key addressing this node's position in its tree,
// using the default "." separator. Field names are written raw.
//
// Examples:
//   - Root node → ""
//   - Object field "a" → "a"
//   - Array element at index 0 → "[0]"
//   - Nested object "a.b" → "a.b"
//   - Mixed "a[0].b" → "a[0].b"
func (node *Node) KPath() string {
	if node.Parent == nil {
		return ""
	}
	switch node.Parent.Type {
	case ObjectType:
		f := node.ParentField
		// A field whose parent is the root is the first step and is
		// written bare; any deeper field takes the separator even when
		// the prefix string happens to be empty (empty field names).
		if node.Parent.Parent == nil {
			return f
		}
		return node.Parent.KPath() + "." + f

	case ArrayType:
		return node.Parent.KPath() + "[" + strconv.Itoa(node.ParentIndex) + "]"

	default:
		panic("parent but not in container")
	}
}
