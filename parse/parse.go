package parse

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/flatkey-format/go-flatkey/ir"
)

// ErrParse reports input text that could not be decoded into a tree value.
var ErrParse = errors.New("parse error")

// Parse decodes a single JSON or YAML document into an IR tree. JSON is
// handled by the YAML parser since every JSON document is a YAML document.
// Mapping order and raw number text are preserved.
func Parse(d []byte) (*ir.Node, error) {
	docs, err := ParseAll(d)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	if len(docs) > 1 {
		return nil, fmt.Errorf("%w: %d documents, expected one", ErrParse, len(docs))
	}
	return docs[0], nil
}

// ParseString is Parse on string input.
func ParseString(s string) (*ir.Node, error) {
	return Parse([]byte(s))
}

// ParseAll decodes a multi-document input into one IR tree per document.
func ParseAll(d []byte) ([]*ir.Node, error) {
	f, err := parser.ParseBytes(d, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	var res []*ir.Node
	for _, doc := range f.Docs {
		if doc.Body == nil {
			continue
		}
		node, err := fromAST(doc.Body)
		if err != nil {
			return nil, err
		}
		res = append(res, node)
	}
	return res, nil
}

func fromAST(n ast.Node) (*ir.Node, error) {
	switch v := n.(type) {
	case *ast.NullNode:
		return ir.Null(), nil

	case *ast.BoolNode:
		return ir.FromBool(v.Value), nil

	case *ast.IntegerNode, *ast.FloatNode:
		// raw token text keeps values that do not fit int64/float64
		return ir.FromNumber(n.GetToken().Value), nil

	case *ast.InfinityNode:
		return ir.FromFloat(v.Value), nil

	case *ast.NanNode:
		return ir.FromFloat(math.NaN()), nil

	case *ast.StringNode:
		return ir.FromString(v.Value), nil

	case *ast.LiteralNode:
		return ir.FromString(v.Value.Value), nil

	case *ast.MappingNode:
		kvs := make([]ir.KeyVal, 0, len(v.Values))
		for _, mv := range v.Values {
			kv, err := fromMappingValue(mv)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, kv)
		}
		return ir.FromKeyVals(kvs), nil

	case *ast.MappingValueNode:
		// a single-pair mapping parses to the pair itself
		kv, err := fromMappingValue(v)
		if err != nil {
			return nil, err
		}
		return ir.FromKeyVals([]ir.KeyVal{kv}), nil

	case *ast.SequenceNode:
		vals := make([]*ir.Node, 0, len(v.Values))
		for _, el := range v.Values {
			val, err := fromAST(el)
			if err != nil {
				return nil, err
			}
			vals = append(vals, val)
		}
		return ir.FromSlice(vals), nil

	case *ast.AnchorNode:
		return fromAST(v.Value)

	case *ast.TagNode:
		return fromAST(v.Value)

	default:
		return nil, fmt.Errorf("%w: unsupported node %s at %s", ErrParse, n.Type(), n.GetToken().Position.String())
	}
}

func fromMappingValue(mv *ast.MappingValueNode) (ir.KeyVal, error) {
	key, err := keyString(mv.Key)
	if err != nil {
		return ir.KeyVal{}, err
	}
	val, err := fromAST(mv.Value)
	if err != nil {
		return ir.KeyVal{}, err
	}
	return ir.KeyVal{Key: ir.FromString(key), Val: val}, nil
}

func keyString(n ast.Node) (string, error) {
	switch v := n.(type) {
	case *ast.StringNode:
		return v.Value, nil
	case *ast.NullNode, *ast.BoolNode, *ast.IntegerNode, *ast.FloatNode:
		return n.GetToken().Value, nil
	default:
		return "", fmt.Errorf("%w: unsupported mapping key %s", ErrParse, n.Type())
	}
}
