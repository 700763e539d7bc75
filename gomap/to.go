package gomap

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/flatkey-format/go-flatkey/ir"
)

// ToIR converts a Go value to an IR node using reflection. Struct fields
// may be renamed or skipped with a `flat:"name"` tag; `flat:"-"` skips the
// field. Cycles through pointers, slices, and maps are reported as
// MarshalErrors.
func ToIR(v any) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	visited := make(map[uintptr]string)
	return toIRValue(reflect.ValueOf(v), "", visited)
}

func toIRValue(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	typ := val.Type()
	kind := typ.Kind()

	if kind == reflect.Ptr {
		if val.IsNil() {
			return ir.Null(), nil
		}
		if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
			return textNode(tm, fieldPath)
		}
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return nil, cycleMarshalError(fieldPath, prevPath)
		}
		visited[ptrAddr] = fieldPath
		node, err := toIRValue(val.Elem(), fieldPath, visited)
		delete(visited, ptrAddr)
		return node, err
	}

	if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
		return textNode(tm, fieldPath)
	}
	if val.CanAddr() {
		if tm, ok := val.Addr().Interface().(encoding.TextMarshaler); ok {
			return textNode(tm, fieldPath)
		}
	}

	switch kind {
	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			// raw number text, not a negative int64
			return ir.FromNumber(strconv.FormatUint(u, 10)), nil
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Slice, reflect.Array:
		return toIRSlice(val, fieldPath, visited)
	case reflect.Map:
		return toIRMap(val, fieldPath, visited)
	case reflect.Struct:
		return toIRStruct(val, fieldPath, visited)
	case reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return toIRValue(val.Elem(), fieldPath, visited)
	default:
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
		}
	}
}

func textNode(tm encoding.TextMarshaler, fieldPath string) (*ir.Node, error) {
	text, err := tm.MarshalText()
	if err != nil {
		return nil, &MarshalError{FieldPath: fieldPath, Message: "MarshalText failed", Err: err}
	}
	return ir.FromString(string(text)), nil
}

func toIRSlice(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.Kind() == reflect.Slice && !val.IsNil() {
		slicePtr := val.Pointer()
		if prevPath, seen := visited[slicePtr]; seen {
			return nil, cycleMarshalError(fieldPath, prevPath)
		}
		visited[slicePtr] = fieldPath
		defer delete(visited, slicePtr)
	}

	length := val.Len()
	elements := make([]*ir.Node, 0, length)
	for i := 0; i < length; i++ {
		elemNode, err := toIRValue(val.Index(i), indexPath(fieldPath, i), visited)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elemNode)
	}
	return ir.FromSlice(elements), nil
}

func toIRMap(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}
	mapPtr := val.Pointer()
	if prevPath, seen := visited[mapPtr]; seen {
		return nil, cycleMarshalError(fieldPath, prevPath)
	}
	visited[mapPtr] = fieldPath
	defer delete(visited, mapPtr)

	if val.Type().Key().Kind() != reflect.String {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("map keys must be strings, got %s", val.Type().Key()),
		}
	}

	irMap := make(map[string]*ir.Node, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		valueNode, err := toIRValue(iter.Value(), keyPath(fieldPath, key), visited)
		if err != nil {
			return nil, err
		}
		irMap[key] = valueNode
	}
	// FromMap sorts keys, keeping map output deterministic.
	return ir.FromMap(irMap), nil
}

// toIRStruct emits fields in declaration order. Embedded structs are
// flattened into the parent object.
func toIRStruct(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	typ := val.Type()
	kvs := []ir.KeyVal{}
	seen := map[string]bool{}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldVal := val.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, err := toIRValue(fieldVal, fieldPath, visited)
			if err != nil {
				return nil, err
			}
			for j := range embedded.Fields {
				name := embedded.Fields[j].String
				if seen[name] {
					return nil, &MarshalError{
						FieldPath: fieldPath,
						Message:   fmt.Sprintf("embedded field %q conflicts with existing field", name),
					}
				}
				seen[name] = true
				kvs = append(kvs, ir.KeyVal{Key: ir.FromString(name), Val: embedded.Values[j]})
			}
			continue
		}

		name := fieldName(field)
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("duplicate field name %q", name),
			}
		}
		seen[name] = true

		fieldNode, err := toIRValue(fieldVal, keyPath(fieldPath, name), visited)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(name), Val: fieldNode})
	}
	return ir.FromKeyVals(kvs), nil
}

// fieldName resolves the IR field name from a `flat` tag, returning ""
// when the field is skipped.
func fieldName(field reflect.StructField) string {
	tag, ok := field.Tag.Lookup("flat")
	if !ok {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

func cycleMarshalError(fieldPath, prevPath string) *MarshalError {
	return &MarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("circular reference: already visited at %q", prevPath),
	}
}

func indexPath(fieldPath string, i int) string {
	return fmt.Sprintf("%s[%d]", fieldPath, i)
}

func keyPath(fieldPath, key string) string {
	if fieldPath == "" {
		return key
	}
	return fieldPath + "." + key
}
