package ir

import (
	"encoding/json"
	"testing"
)

func TestNodeJSONRoundTrip(t *testing.T) {
	orig := FromKeyVals([]KeyVal{
		{Key: FromString("s"), Val: FromString("x")},
		{Key: FromString("n"), Val: FromNumber("1e3")},
		{Key: FromString("b"), Val: FromBool(true)},
		{Key: FromString("xs"), Val: FromSlice([]*Node{Null(), FromInt(2)})},
		{Key: FromString("o"), Val: &Node{Type: ObjectType}},
	})
	d, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	back := &Node{}
	if err := json.Unmarshal(d, back); err != nil {
		t.Fatal(err)
	}
	if !Equal(orig, back) {
		t.Fatalf("round trip changed node: %s", d)
	}
	// parent links are restored
	if back.Values[3].Values[1].Parent != back.Values[3] {
		t.Error("array parent link missing")
	}
	if back.Values[0].ParentField != "s" {
		t.Errorf("value parent field: %+v", back.Values[0])
	}
}

func TestNodeJSONInvalid(t *testing.T) {
	for _, d := range []string{
		`{"type": "Object", "fields": [{"type": "String", "string": "a"}]}`,
		`{"type": "Object", "fields": [{"type": "Number", "int": 1}], "values": [{"type": "Null"}]}`,
		`{"type": "Array", "fields": [{"type": "String", "string": "a"}]}`,
	} {
		n := &Node{}
		if err := json.Unmarshal([]byte(d), n); err == nil {
			t.Errorf("expected error for %s", d)
		}
	}
}
