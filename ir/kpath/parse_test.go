package kpath

import (
	"errors"
	"testing"
)

func stringPtr(s string) *string { return &s }
func intPtr(i int) *int          { return &i }

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		sep    string
		want   *KPath
		marker Marker
		enc    string // re-encoded form when it differs from key
	}{
		{
			name: "empty key is the root",
			key:  "",
			want: nil,
		},
		{
			name: "single field",
			key:  "a",
			want: &KPath{Field: stringPtr("a")},
		},
		{
			name: "nested fields",
			key:  "a.b.c",
			want: &KPath{
				Field: stringPtr("a"),
				Next: &KPath{
					Field: stringPtr("b"),
					Next:  &KPath{Field: stringPtr("c")},
				},
			},
		},
		{
			name: "field then index",
			key:  "a[0]",
			want: &KPath{
				Field: stringPtr("a"),
				Next:  &KPath{Index: intPtr(0)},
			},
		},
		{
			name: "root index",
			key:  "[3]",
			want: &KPath{Index: intPtr(3)},
		},
		{
			name: "index then field",
			key:  "a[0].b",
			want: &KPath{
				Field: stringPtr("a"),
				Next: &KPath{
					Index: intPtr(0),
					Next:  &KPath{Field: stringPtr("b")},
				},
			},
		},
		{
			name: "field directly after bracket",
			key:  "a[0]b",
			want: &KPath{
				Field: stringPtr("a"),
				Next: &KPath{
					Index: intPtr(0),
					Next:  &KPath{Field: stringPtr("b")},
				},
			},
			enc: "a[0].b",
		},
		{
			name: "trailing empty field",
			key:  "a.",
			want: &KPath{
				Field: stringPtr("a"),
				Next:  &KPath{Field: stringPtr("")},
			},
		},
		{
			name: "leading empty field",
			key:  ".b",
			want: &KPath{
				Field: stringPtr(""),
				Next:  &KPath{Field: stringPtr("b")},
			},
		},
		{
			name: "empty field between separator and bracket",
			key:  "a.[0]",
			want: &KPath{
				Field: stringPtr("a"),
				Next: &KPath{
					Field: stringPtr(""),
					Next:  &KPath{Index: intPtr(0)},
				},
			},
		},
		{
			name: "consecutive separators",
			key:  "a..b",
			want: &KPath{
				Field: stringPtr("a"),
				Next: &KPath{
					Field: stringPtr(""),
					Next:  &KPath{Field: stringPtr("b")},
				},
			},
		},
		{
			name:   "root empty object marker",
			key:    "{}",
			want:   nil,
			marker: MarkerEmptyObject,
		},
		{
			name:   "root empty array marker",
			key:    "[]",
			want:   nil,
			marker: MarkerEmptyArray,
		},
		{
			name:   "field with empty object marker",
			key:    "a{}",
			want:   &KPath{Field: stringPtr("a")},
			marker: MarkerEmptyObject,
		},
		{
			name:   "field with empty array marker",
			key:    "arr[]",
			want:   &KPath{Field: stringPtr("arr")},
			marker: MarkerEmptyArray,
		},
		{
			name: "empty field with empty object marker",
			key:  "a.{}",
			want: &KPath{
				Field: stringPtr("a"),
				Next:  &KPath{Field: stringPtr("")},
			},
			marker: MarkerEmptyObject,
		},
		{
			name: "marker after index",
			key:  "a[0]{}",
			want: &KPath{
				Field: stringPtr("a"),
				Next:  &KPath{Index: intPtr(0)},
			},
			marker: MarkerEmptyObject,
		},
		{
			name: "custom multi-byte separator",
			key:  "a::b::c",
			sep:  "::",
			want: &KPath{
				Field: stringPtr("a"),
				Next: &KPath{
					Field: stringPtr("b"),
					Next:  &KPath{Field: stringPtr("c")},
				},
			},
		},
		{
			name: "dot is ordinary under custom separator",
			key:  "a.b",
			sep:  "::",
			want: &KPath{Field: stringPtr("a.b")},
		},
		{
			name: "lone braces are field text",
			key:  "a}b{c",
			want: &KPath{Field: stringPtr("a}b{c")},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sep := tc.sep
			if sep == "" {
				sep = "."
			}
			got, marker, err := Parse(tc.key, sep)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.key, err)
			}
			if marker != tc.marker {
				t.Errorf("Parse(%q) marker = %v, want %v", tc.key, marker, tc.marker)
			}
			if !pathsEqual(got, tc.want) {
				t.Errorf("Parse(%q) = %s, want %s", tc.key, got.String(sep), tc.want.String(sep))
			}
			// re-encoding yields the original key (or its
			// canonical spelling)
			want := tc.enc
			if want == "" {
				want = tc.key
			}
			if enc := Encode(got, marker, sep); enc != want {
				t.Errorf("Encode(Parse(%q)) = %q, want %q", tc.key, enc, want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		kind error
	}{
		{"missing closing bracket", "a[0", ErrParse},
		{"unexpected closing bracket", "a]b", ErrParse},
		{"non-numeric index", "a[x]", ErrParse},
		{"signed index", "a[+1]", ErrParse},
		{"negative index", "a[-1]", ErrIndex},
		{"huge index", "a[99999999999999999999]", ErrIndex},
		{"array marker not at end", "a[]b", ErrParse},
		{"object marker not at end", "a{}b", ErrParse},
		{"object marker mid field", "x{}y.z", ErrParse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.key, ".")
			if err == nil {
				t.Fatalf("Parse(%q): no error", tc.key)
			}
			if !errors.Is(err, tc.kind) {
				t.Errorf("Parse(%q) = %v, want %v", tc.key, err, tc.kind)
			}
		})
	}
}

func TestCheckSeparator(t *testing.T) {
	for _, sep := range []string{".", "::", "/", "__"} {
		if err := CheckSeparator(sep); err != nil {
			t.Errorf("CheckSeparator(%q): %v", sep, err)
		}
	}
	for _, sep := range []string{"", "[", "]", "{", "}", "a[b", ".}"} {
		if err := CheckSeparator(sep); !errors.Is(err, ErrSeparator) {
			t.Errorf("CheckSeparator(%q) = %v, want ErrSeparator", sep, err)
		}
	}
}

func pathsEqual(a, b *KPath) bool {
	for a != nil && b != nil {
		switch {
		case a.Field != nil && b.Field != nil:
			if *a.Field != *b.Field {
				return false
			}
		case a.Index != nil && b.Index != nil:
			if *a.Index != *b.Index {
				return false
			}
		default:
			return false
		}
		a, b = a.Next, b.Next
	}
	return a == nil && b == nil
}
