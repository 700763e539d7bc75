package ir

import "testing"

func TestFromKeyValsOrder(t *testing.T) {
	node := FromKeyVals([]KeyVal{
		{Key: FromString("z"), Val: FromInt(1)},
		{Key: FromString("a"), Val: FromInt(2)},
	})
	if node.Type != ObjectType {
		t.Fatalf("got %s", node.Type)
	}
	if node.Fields[0].String != "z" || node.Fields[1].String != "a" {
		t.Errorf("order not preserved: %q, %q", node.Fields[0].String, node.Fields[1].String)
	}
	if node.Values[0].Parent != node || node.Values[0].ParentField != "z" {
		t.Errorf("parent links not set: %+v", node.Values[0])
	}
}

func TestFromMapSorts(t *testing.T) {
	node := FromMap(map[string]*Node{
		"z": FromInt(1),
		"a": FromInt(2),
	})
	if node.Fields[0].String != "a" || node.Fields[1].String != "z" {
		t.Errorf("got %q, %q", node.Fields[0].String, node.Fields[1].String)
	}
}

func TestFromNumber(t *testing.T) {
	n := FromNumber("42")
	if n.Int64 == nil || *n.Int64 != 42 || n.Number != "42" {
		t.Errorf("int: %+v", n)
	}
	n = FromNumber("1.5")
	if n.Float64 == nil || *n.Float64 != 1.5 {
		t.Errorf("float: %+v", n)
	}
	// 2^64 fits neither int64 nor exactly float64; the raw text stays.
	n = FromNumber("18446744073709551616")
	if n.Number != "18446744073709551616" {
		t.Errorf("big: %+v", n)
	}
}

func TestClone(t *testing.T) {
	orig := FromKeyVals([]KeyVal{
		{Key: FromString("a"), Val: FromSlice([]*Node{FromInt(1), Null()})},
	})
	cp := orig.Clone()
	if !Equal(orig, cp) {
		t.Fatal("clone not equal")
	}
	// deep copy, not sharing
	cp.Values[0].Values[0] = FromInt(9)
	if Equal(orig, cp) {
		t.Fatal("clone shares structure")
	}
	if cp.Values[0].Parent != cp {
		t.Error("clone parent links broken")
	}
}

func TestAppendField(t *testing.T) {
	node := &Node{Type: ObjectType}
	node.AppendField("a", FromInt(1))
	node.AppendField("b", FromInt(2))
	if len(node.Fields) != 2 || node.Fields[1].String != "b" {
		t.Fatalf("fields: %+v", node.Fields)
	}
	if node.Values[1].ParentIndex != 1 || node.Values[1].ParentField != "b" {
		t.Errorf("links: %+v", node.Values[1])
	}
}

func TestAppendValue(t *testing.T) {
	node := &Node{Type: ArrayType}
	node.AppendValue(FromInt(1))
	node.AppendValue(FromInt(2))
	if len(node.Values) != 2 || node.Values[1].ParentIndex != 1 {
		t.Fatalf("values: %+v", node.Values)
	}
}

func TestGet(t *testing.T) {
	node := FromKeyVals([]KeyVal{
		{Key: FromString("a"), Val: FromInt(1)},
	})
	if v := Get(node, "a"); v == nil || v.Int64 == nil || *v.Int64 != 1 {
		t.Errorf("got %+v", v)
	}
	if v := Get(node, "b"); v != nil {
		t.Errorf("got %+v, want nil", v)
	}
}

func TestRoot(t *testing.T) {
	root := FromKeyVals([]KeyVal{
		{Key: FromString("a"), Val: FromSlice([]*Node{FromInt(1)})},
	})
	leaf := root.Values[0].Values[0]
	if leaf.Root() != root {
		t.Error("Root did not reach the top")
	}
}

func TestKPath(t *testing.T) {
	root := FromKeyVals([]KeyVal{
		{Key: FromString("a"), Val: FromSlice([]*Node{
			FromKeyVals([]KeyVal{
				{Key: FromString("b"), Val: FromInt(1)},
			}),
		})},
	})
	leaf := root.Values[0].Values[0].Values[0]
	if got := leaf.KPath(); got != "a[0].b" {
		t.Errorf("got %q, want %q", got, "a[0].b")
	}
	if got := root.Values[0].KPath(); got != "a" {
		t.Errorf("got %q, want %q", got, "a")
	}
}
