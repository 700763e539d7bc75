package flatkey

import (
	"errors"
	"testing"

	"github.com/flatkey-format/go-flatkey/ir"
)

func TestLookup(t *testing.T) {
	doc := mustParse(t, `{"a": {"b": [1, {"c": "x"}]}, "n": null, "e": {}, "xs": []}`)
	tests := []struct {
		name string
		key  string
		opts []Option
		want *ir.Node
	}{
		{
			name: "empty key is the whole tree",
			key:  "",
			want: doc,
		},
		{
			name: "nested field",
			key:  "a.b[0]",
			want: ir.FromInt(1),
		},
		{
			name: "field after index",
			key:  "a.b[1].c",
			want: ir.FromString("x"),
		},
		{
			name: "container result",
			key:  "a.b",
			want: mustParse(t, `[1, {"c": "x"}]`),
		},
		{
			name: "null leaf",
			key:  "n",
			want: ir.Null(),
		},
		{
			name: "empty object marker",
			key:  "e{}",
			want: mustParse(t, `{}`),
		},
		{
			name: "empty array marker",
			key:  "xs[]",
			want: mustParse(t, `[]`),
		},
		{
			name: "custom separator",
			key:  "a::b[1]::c",
			opts: []Option{WithSeparator("::")},
			want: ir.FromString("x"),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Lookup(doc, tc.key, tc.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLookupErrors(t *testing.T) {
	doc := mustParse(t, `{"a": {"b": [1]}, "s": "leaf"}`)
	tests := []struct {
		name    string
		key     string
		opts    []Option
		wantErr error
	}{
		{
			name:    "missing field",
			key:     "a.z",
			wantErr: ErrNotFound,
		},
		{
			name:    "index out of range",
			key:     "a.b[3]",
			wantErr: ErrNotFound,
		},
		{
			name:    "field step into a leaf",
			key:     "s.x",
			wantErr: ErrStructuralConflict,
		},
		{
			name:    "index step into an object",
			key:     "a[0]",
			wantErr: ErrStructuralConflict,
		},
		{
			name:    "marker on a non-empty container",
			key:     "a{}",
			wantErr: ErrNotFound,
		},
		{
			name:    "malformed key",
			key:     "a[",
			wantErr: ErrParse,
		},
		{
			name:    "bad separator",
			key:     "a",
			opts:    []Option{WithSeparator("[")},
			wantErr: ErrSeparator,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Lookup(doc, tc.key, tc.opts...)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestLookupOr(t *testing.T) {
	doc := mustParse(t, `{"a": {"b": 1}}`)
	def := ir.FromString("fallback")

	got, err := LookupOr(doc, "a.b", def)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(got, ir.FromInt(1)) {
		t.Errorf("got %v, want 1", got)
	}

	got, err = LookupOr(doc, "a.z", def)
	if err != nil {
		t.Fatal(err)
	}
	if got != def {
		t.Errorf("got %v, want the default", got)
	}

	if _, err = LookupOr(doc, "a[", def); !errors.Is(err, ErrParse) {
		t.Fatalf("got %v, want ErrParse", err)
	}
}
