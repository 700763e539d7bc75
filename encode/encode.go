package encode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/flatkey-format/go-flatkey/format"
	"github.com/flatkey-format/go-flatkey/ir"
)

// ErrEncode reports a node that cannot be written in the selected format.
var ErrEncode = errors.New("encode error")

// EncState carries the target writer and the selected output style through
// an encoding pass.
type EncState struct {
	w      io.Writer
	format format.Format
	indent int
	wire   bool
	colors *Colors
	err    error
}

// Encode writes node to w in the format selected by opts (JSON by default).
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{w: w, indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrEncode)
	}
	switch es.format {
	case format.JSONFormat:
		es.encodeJSON(node, 0)
	case format.YAMLFormat:
		es.encodeYAML(node, 0, true)
	default:
		return fmt.Errorf("%w: unknown format %d", ErrEncode, es.format)
	}
	if es.err != nil {
		return es.err
	}
	es.write("\n")
	return es.err
}

// String encodes node and returns the text.
func String(node *ir.Node, opts ...EncodeOption) (string, error) {
	var buf strings.Builder
	if err := Encode(node, &buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (es *EncState) write(s string) {
	if es.err != nil {
		return
	}
	_, es.err = io.WriteString(es.w, s)
}

func (es *EncState) colored(c colorClass, s string) {
	es.write(es.colors.paint(c, s))
}

func (es *EncState) pad(depth int) {
	es.write(strings.Repeat(" ", depth*es.indent))
}

func (es *EncState) encodeJSON(n *ir.Node, depth int) {
	switch n.Type {
	case ir.NullType:
		es.colored(nullClass, "null")
	case ir.BoolType:
		es.colored(boolClass, strconv.FormatBool(n.Bool))
	case ir.NumberType:
		num, err := jsonNumber(n)
		if err != nil {
			es.err = err
			return
		}
		es.colored(numberClass, num)
	case ir.StringType:
		es.colored(stringClass, quote(n.String))
	case ir.ArrayType:
		if len(n.Values) == 0 {
			es.write("[]")
			return
		}
		es.write("[")
		for i, v := range n.Values {
			if i > 0 {
				es.write(",")
			}
			es.sep(depth + 1)
			es.encodeJSON(v, depth+1)
		}
		es.sep(depth)
		es.write("]")
	case ir.ObjectType:
		if len(n.Fields) == 0 {
			es.write("{}")
			return
		}
		es.write("{")
		for i := range n.Fields {
			if i > 0 {
				es.write(",")
			}
			es.sep(depth + 1)
			es.colored(keyClass, quote(n.Fields[i].String))
			if es.wire {
				es.write(":")
			} else {
				es.write(": ")
			}
			es.encodeJSON(n.Values[i], depth+1)
		}
		es.sep(depth)
		es.write("}")
	default:
		es.err = fmt.Errorf("%w: node of type %s", ErrEncode, n.Type)
	}
}

// sep starts a new element at depth, or writes nothing extra in wire mode.
func (es *EncState) sep(depth int) {
	if es.wire {
		return
	}
	es.write("\n")
	es.pad(depth)
}

func (es *EncState) encodeYAML(n *ir.Node, depth int, inline bool) {
	switch n.Type {
	case ir.NullType, ir.BoolType, ir.NumberType, ir.StringType:
		es.colored(scalarClass(n), yamlScalar(n))
	case ir.ArrayType:
		if len(n.Values) == 0 {
			es.write("[]")
			return
		}
		for i, v := range n.Values {
			if i > 0 || !inline {
				es.write("\n")
				es.pad(depth)
			}
			es.write("- ")
			es.encodeYAML(v, depth+1, true)
		}
	case ir.ObjectType:
		if len(n.Fields) == 0 {
			es.write("{}")
			return
		}
		for i := range n.Fields {
			if i > 0 || !inline {
				es.write("\n")
				es.pad(depth)
			}
			es.colored(keyClass, yamlKey(n.Fields[i].String))
			es.write(":")
			v := n.Values[i]
			if v.Type.IsLeaf() || len(v.Values) == 0 {
				es.write(" ")
			}
			es.encodeYAML(v, depth+1, false)
		}
	default:
		es.err = fmt.Errorf("%w: node of type %s", ErrEncode, n.Type)
	}
}

func scalarClass(n *ir.Node) colorClass {
	switch n.Type {
	case ir.NullType:
		return nullClass
	case ir.BoolType:
		return boolClass
	case ir.NumberType:
		return numberClass
	default:
		return stringClass
	}
}

func yamlScalar(n *ir.Node) string {
	switch n.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return strconv.FormatBool(n.Bool)
	case ir.NumberType:
		if n.Number != "" {
			return n.Number
		}
		if n.Int64 != nil {
			return strconv.FormatInt(*n.Int64, 10)
		}
		if n.Float64 != nil {
			f := *n.Float64
			switch {
			case math.IsNaN(f):
				return ".nan"
			case math.IsInf(f, 1):
				return ".inf"
			case math.IsInf(f, -1):
				return "-.inf"
			}
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return "0"
	default:
		return quote(n.String)
	}
}

// yamlKey writes plain keys bare and anything that could confuse a YAML
// reader quoted.
func yamlKey(s string) string {
	if s == "" || strings.ContainsAny(s, ":#{}[],&*!|>'\"%@` \t\n") ||
		strings.HasPrefix(s, "-") || strings.HasPrefix(s, "?") {
		return quote(s)
	}
	return s
}

func jsonNumber(n *ir.Node) (string, error) {
	if n.Number != "" {
		return n.Number, nil
	}
	if n.Int64 != nil {
		return strconv.FormatInt(*n.Int64, 10), nil
	}
	if n.Float64 != nil {
		f := *n.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%w: %v has no JSON representation", ErrEncode, f)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	return "0", nil
}

// quote JSON-escapes s; the result is valid in YAML double-quoted style too.
func quote(s string) string {
	d, err := json.Marshal(s)
	if err != nil {
		// strings always marshal
		panic(err)
	}
	return string(d)
}
