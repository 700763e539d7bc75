// Package encode renders ir.Nodes as JSON or YAML text.
//
// JSON output is pretty-printed by default; EncodeWire selects compact
// single-line output. Numbers keep their original source text when it is
// known. Optional terminal coloring is available via EncodeColors.
package encode
