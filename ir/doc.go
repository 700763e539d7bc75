// Package ir provides the in-memory representation of JSON-like tree values.
//
// # Overview
//
// All values handled by go-flatkey (whether decoded from text, created
// programmatically, or reconstructed from a flat mapping) are represented as
// ir.Node trees. The IR is a recursive tagged union: the Type field selects
// which value fields of a Node are meaningful.
//
// # Node Types
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64, float64, or raw text)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: key-value pairs (fields and values)
//
// # Objects
//
// Objects hold their entries in insertion order through the parallel Fields
// and Values slices: Fields[i] is a StringType node naming the field stored
// at Values[i]. Field names are arbitrary strings: they may be empty and may
// contain separator or bracket characters. Order is significant and is
// preserved by Clone, Compare, and the JSON marshalling of the IR.
//
// # Numbers
//
// Numbers never narrow. Integral values carry Int64, others Float64, and
// values representable in neither (arbitrary precision, huge exponents) keep
// their raw text in Number. Round trips through flatten/unflatten preserve
// whichever representation a node carries.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	flag := ir.FromBool(true)
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("key"), Val: ir.FromString("value")},
//	})
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//
// FromKeyVals preserves the order given; FromMap sorts keys since Go maps
// are unordered.
//
// Each node maintains parent links (Parent, ParentIndex, ParentField), which
// allow navigation back to the root and position reporting via KPath.
package ir
