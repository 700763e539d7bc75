package flatdiff

import (
	"testing"

	"github.com/flatkey-format/go-flatkey/parse"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want []string // "op key" strings
	}{
		{
			name: "identical",
			from: `{"a": 1, "b": [2, 3]}`,
			to:   `{"a": 1, "b": [2, 3]}`,
			want: nil,
		},
		{
			name: "change leaf",
			from: `{"a": 1}`,
			to:   `{"a": 2}`,
			want: []string{"change a"},
		},
		{
			name: "add and delete",
			from: `{"a": 1, "b": 2}`,
			to:   `{"b": 2, "c": 3}`,
			want: []string{"delete a", "add c"},
		},
		{
			name: "reorder only",
			from: `{"a": 1, "b": 2}`,
			to:   `{"b": 2, "a": 1}`,
			want: nil,
		},
		{
			name: "nested change",
			from: `{"x": {"y": [1, 2]}}`,
			to:   `{"x": {"y": [1, 5]}}`,
			want: []string{"change x.y[1]"},
		},
		{
			name: "container becomes leaf",
			from: `{"a": {"b": 1}}`,
			to:   `{"a": 7}`,
			want: []string{"delete a.b", "add a"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			from, err := parse.ParseString(tc.from)
			if err != nil {
				t.Fatal(err)
			}
			to, err := parse.ParseString(tc.to)
			if err != nil {
				t.Fatal(err)
			}
			entries, err := Diff(from, to)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for i := range entries {
				got = append(got, entries[i].Op.String()+" "+entries[i].Key)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("entry %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestDiffMultilineRefinement(t *testing.T) {
	from, err := parse.ParseString(`{"text": "one\ntwo\nthree\n"}`)
	if err != nil {
		t.Fatal(err)
	}
	to, err := parse.ParseString(`{"text": "one\nTWO\nthree\n"}`)
	if err != nil {
		t.Fatal(err)
	}
	entries, err := Diff(from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	ent := &entries[0]
	if ent.Op != Change || ent.Key != "text" {
		t.Fatalf("got %s %s, want change text", ent.Op, ent.Key)
	}
	if len(ent.Text) == 0 {
		t.Fatal("expected line-level refinement")
	}
	var sawDelete, sawInsert bool
	for _, d := range ent.Text {
		switch d.Type {
		case diffpatch.DiffDelete:
			sawDelete = sawDelete || d.Text == "two\n"
		case diffpatch.DiffInsert:
			sawInsert = sawInsert || d.Text == "TWO\n"
		}
	}
	if !sawDelete || !sawInsert {
		t.Errorf("line diff missed the changed line: %v", ent.Text)
	}
}
