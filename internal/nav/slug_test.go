package nav

import (
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     Descriptor
	}{
		{
			name:     "empty",
			segments: nil,
			want:     Descriptor{},
		},
		{
			name:     "single type",
			segments: []string{"entities"},
			want: Descriptor{
				Chain: []ChainEntry{{Kind: KindEntity, Type: "entities"}},
			},
		},
		{
			name:     "type with id",
			segments: []string{"entities", "abc123"},
			want: Descriptor{
				Chain: []ChainEntry{{Kind: KindEntity, Type: "entities", ID: "abc123"}},
			},
		},
		{
			name:     "trailing create verb",
			segments: []string{"entities", "create"},
			want: Descriptor{
				Chain: []ChainEntry{{Kind: KindEntity, Type: "entities"}},
				Verb:  "create",
			},
		},
		{
			name:     "addressed entity with edit verb",
			segments: []string{"entities", "abc123", "edit"},
			want: Descriptor{
				Chain: []ChainEntry{{Kind: KindEntity, Type: "entities", ID: "abc123"}},
				Verb:  "edit",
			},
		},
		{
			name:     "nested sub-resource with verb",
			segments: []string{"entities", "abc123", "ratings", "create"},
			want: Descriptor{
				Chain: []ChainEntry{
					{Kind: KindEntity, Type: "entities", ID: "abc123"},
					{Kind: KindEntity, Type: "ratings"},
				},
				Verb: "create",
			},
		},
		{
			name:     "deep chain with ids at every level",
			segments: []string{"entities", "e1", "ratings", "r1", "comments", "c1"},
			want: Descriptor{
				Chain: []ChainEntry{
					{Kind: KindEntity, Type: "entities", ID: "e1"},
					{Kind: KindEntity, Type: "ratings", ID: "r1"},
					{Kind: KindEntity, Type: "comments", ID: "c1"},
				},
			},
		},
		{
			name:     "unknown token carried through",
			segments: []string{"bogus"},
			want: Descriptor{
				Chain: []ChainEntry{{Kind: KindUnknown, Type: "bogus"}},
			},
		},
		{
			name:     "unknown token between entities",
			segments: []string{"entities", "e1", "bogus", "junk"},
			want: Descriptor{
				Chain: []ChainEntry{
					{Kind: KindEntity, Type: "entities", ID: "e1"},
					{Kind: KindUnknown, Type: "bogus"},
					{Kind: KindUnknown, Type: "junk"},
				},
			},
		},
		{
			name:     "verb only",
			segments: []string{"create"},
			want:     Descriptor{Verb: "create"},
		},
		{
			name:     "verb token in the middle is never an id",
			segments: []string{"entities", "create", "ratings"},
			want: Descriptor{
				Chain: []ChainEntry{
					{Kind: KindEntity, Type: "entities"},
					{Kind: KindUnknown, Type: "create"},
					{Kind: KindEntity, Type: "ratings"},
				},
			},
		},
		{
			name:     "consecutive types take no ids",
			segments: []string{"entities", "ratings", "r1"},
			want: Descriptor{
				Chain: []ChainEntry{
					{Kind: KindEntity, Type: "entities"},
					{Kind: KindEntity, Type: "ratings", ID: "r1"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.segments)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode(%v) = %+v, want %+v", tt.segments, got, tt.want)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	slugs := [][]string{
		{"entities"},
		{"entities", "abc123"},
		{"entities", "abc123", "edit"},
		{"entities", "abc123", "ratings", "create"},
		{"entities", "e1", "ratings", "r1", "comments", "c1"},
		{"bogus", "junk"},
		{"create"},
	}

	for _, segs := range slugs {
		d := Decode(segs)
		if got := Encode(d); !reflect.DeepEqual(got, segs) {
			t.Errorf("Encode(Decode(%v)) = %v, want original segments", segs, got)
		}
		if again := Decode(Encode(d)); !reflect.DeepEqual(again, d) {
			t.Errorf("Decode(Encode(d)) = %+v, want %+v", again, d)
		}
	}
}

func TestEncodeSkipsUnknownIDs(t *testing.T) {
	d := Descriptor{
		Chain: []ChainEntry{{Kind: KindUnknown, Type: "bogus", ID: "ignored"}},
	}
	got := Encode(d)
	want := []string{"bogus"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode(%+v) = %v, want %v", d, got, want)
	}
}

func TestSlugFromPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/maps", nil},
		{"/maps/", nil},
		{"/maps/entities/abc123", []string{"entities", "abc123"}},
		{"/maps/entities/abc123/edit", []string{"entities", "abc123", "edit"}},
		{"/maps//entities//abc123/", []string{"entities", "abc123"}},
	}

	for _, tt := range tests {
		if got := SlugFromPath(tt.path); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SlugFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestNormalizeParam(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"empty string", "", []string{}},
		{"single string", "entities", []string{"entities"}},
		{"string slice", []string{"entities", "abc"}, []string{"entities", "abc"}},
		{"any slice", []any{"entities", "abc"}, []string{"entities", "abc"}},
		{"any slice with non-strings", []any{"entities", 42}, []string{"entities", "42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeParam(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeParam(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeParamCopies(t *testing.T) {
	src := []string{"entities", "abc"}
	out := NormalizeParam(src)
	out[0] = "mutated"
	if src[0] != "entities" {
		t.Error("NormalizeParam returned a slice aliasing its input")
	}
}
