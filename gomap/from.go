package gomap

import (
	"fmt"
	"strconv"

	"github.com/flatkey-format/go-flatkey/ir"
)

// FromIR converts an IR node to plain Go values: objects become
// map[string]any, arrays []any, and leaves string, bool, int64, float64,
// or nil. Object field order is not represented in the result.
func FromIR(node *ir.Node) (any, error) {
	return fromIR(node, "")
}

func fromIR(node *ir.Node, fieldPath string) (any, error) {
	if node == nil {
		return nil, &UnmarshalError{FieldPath: fieldPath, Message: "node is nil"}
	}
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		return numberValue(node, fieldPath)
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			elem, err := fromIR(v, indexPath(fieldPath, i))
			if err != nil {
				return nil, err
			}
			res[i] = elem
		}
		return res, nil
	case ir.ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i := range node.Fields {
			key := node.Fields[i].String
			val, err := fromIR(node.Values[i], keyPath(fieldPath, key))
			if err != nil {
				return nil, err
			}
			res[key] = val
		}
		return res, nil
	default:
		return nil, &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported node type: %s", node.Type),
		}
	}
}

func numberValue(node *ir.Node, fieldPath string) (any, error) {
	if node.Int64 != nil {
		return *node.Int64, nil
	}
	if node.Float64 != nil {
		return *node.Float64, nil
	}
	if node.Number != "" {
		if i, err := strconv.ParseInt(node.Number, 10, 64); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(node.Number, 64); err == nil {
			return f, nil
		}
		return nil, &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("invalid number: %q", node.Number),
		}
	}
	return nil, &UnmarshalError{FieldPath: fieldPath, Message: "number node has no value"}
}
