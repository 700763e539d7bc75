// Package parse decodes JSON and YAML text into IR trees.
//
// Decoding goes through the goccy/go-yaml AST rather than through Go maps so
// that mapping order survives and number tokens keep their raw text. The
// flatten/unflatten core never touches text itself; this package is the
// codec in front of it.
//
// # Usage
//
//	node, err := parse.Parse([]byte(`{"users": [{"name": "ann"}]}`))
//
// Multi-document YAML inputs go through ParseAll.
package parse
