package encode

import "github.com/flatkey-format/go-flatkey/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func EncodeJSON() EncodeOption {
	return EncodeFormat(format.JSONFormat)
}

func EncodeYAML() EncodeOption {
	return EncodeFormat(format.YAMLFormat)
}

// EncodeWire selects compact single-line output (JSON only).
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// Indent sets the number of spaces per nesting level. The default is 2.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}
