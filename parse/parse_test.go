package parse

import (
	"errors"
	"testing"

	"github.com/flatkey-format/go-flatkey/ir"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		in   string
		typ  ir.Type
		chk  func(n *ir.Node) bool
		desc string
	}{
		{`null`, ir.NullType, nil, "null"},
		{`true`, ir.BoolType, func(n *ir.Node) bool { return n.Bool }, "bool"},
		{`42`, ir.NumberType, func(n *ir.Node) bool { return n.Int64 != nil && *n.Int64 == 42 }, "int"},
		{`-7`, ir.NumberType, func(n *ir.Node) bool { return n.Int64 != nil && *n.Int64 == -7 }, "negative int"},
		{`1.5`, ir.NumberType, func(n *ir.Node) bool { return n.Float64 != nil && *n.Float64 == 1.5 }, "float"},
		{`1e3`, ir.NumberType, func(n *ir.Node) bool { return n.Number == "1e3" }, "raw exponent"},
		{`"hi"`, ir.StringType, func(n *ir.Node) bool { return n.String == "hi" }, "string"},
		{`"a\nb"`, ir.StringType, func(n *ir.Node) bool { return n.String == "a\nb" }, "escaped string"},
		{`hi`, ir.StringType, func(n *ir.Node) bool { return n.String == "hi" }, "yaml plain string"},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			n, err := ParseString(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if n.Type != tc.typ {
				t.Fatalf("got type %s, want %s", n.Type, tc.typ)
			}
			if tc.chk != nil && !tc.chk(n) {
				t.Errorf("value check failed for %q: %+v", tc.in, n)
			}
		})
	}
}

func TestParseOrderPreserved(t *testing.T) {
	n, err := ParseString(`{"z": 1, "a": 2, "m": 3}`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"z", "a", "m"}
	if len(n.Fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(n.Fields), len(want))
	}
	for i, f := range want {
		if n.Fields[i].String != f {
			t.Errorf("field %d: got %q, want %q", i, n.Fields[i].String, f)
		}
	}
}

func TestParseYAML(t *testing.T) {
	n, err := ParseString("a:\n  b: 1\nxs:\n- 1\n- two\n")
	if err != nil {
		t.Fatal(err)
	}
	if n.Type != ir.ObjectType || len(n.Fields) != 2 {
		t.Fatalf("unexpected shape: %+v", n)
	}
	xs := n.Values[1]
	if xs.Type != ir.ArrayType || len(xs.Values) != 2 {
		t.Fatalf("xs: %+v", xs)
	}
	if xs.Values[1].String != "two" {
		t.Errorf("got %q, want %q", xs.Values[1].String, "two")
	}
}

func TestParseEmptyContainers(t *testing.T) {
	n, err := ParseString(`{"a": {}, "b": []}`)
	if err != nil {
		t.Fatal(err)
	}
	if n.Values[0].Type != ir.ObjectType || len(n.Values[0].Values) != 0 {
		t.Errorf("a: %+v", n.Values[0])
	}
	if n.Values[1].Type != ir.ArrayType || len(n.Values[1].Values) != 0 {
		t.Errorf("b: %+v", n.Values[1])
	}
}

func TestParseParentLinks(t *testing.T) {
	n, err := ParseString(`{"a": [{"b": 1}]}`)
	if err != nil {
		t.Fatal(err)
	}
	arr := n.Values[0]
	if arr.Parent != n || arr.ParentField != "a" {
		t.Errorf("arr parent links: %+v", arr)
	}
	obj := arr.Values[0]
	if obj.Parent != arr || obj.ParentIndex != 0 {
		t.Errorf("obj parent links: %+v", obj)
	}
	if got := obj.Values[0].KPath(); got != "a[0].b" {
		t.Errorf("got kpath %q, want %q", got, "a[0].b")
	}
}

func TestParseAllDocs(t *testing.T) {
	docs, err := ParseAll([]byte("a: 1\n---\nb: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].Fields[0].String != "a" || docs[1].Fields[0].String != "b" {
		t.Errorf("docs: %+v", docs)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{``, "a: 1\n---\nb: 2\n", `{"a":`} {
		if _, err := ParseString(in); !errors.Is(err, ErrParse) {
			t.Errorf("%q: got %v, want ErrParse", in, err)
		}
	}
}
