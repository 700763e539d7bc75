// Package kpath implements the flat key grammar: the encoding of tree
// positions as strings.
//
// A flat key is a sequence of steps. Field steps are joined by a caller
// chosen separator (the first one is written bare); index steps are written
// as "[i]" directly after the preceding step. A key may end in an
// empty-container marker: "[]" for an empty array, "{}" for an empty object.
//
// With separator ".":
//
//	"users[0].name" → Field("users"), Index(0), Field("name")
//	"a.b"           → Field("a"), Field("b")
//	"a."            → Field("a"), Field("")
//	"arr[]"         → Field("arr"), empty-array marker
//	""              → the root position itself
//
// Parse and Encode are mutually inverse for keys produced by Encode, given
// the same separator and field names free of separator, bracket, and marker
// text. Field names are raw: the grammar has no quoting.
package kpath
