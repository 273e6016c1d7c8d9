package ingest

import (
	"strings"
	"testing"
)

func TestParseWishlistFormats(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		title  string
		artist string
	}{
		{"em dash", "- Night Drive — Neon City", "Night Drive", "Neon City"},
		{"plain dash", "- Night Drive - Neon City", "Night Drive", "Neon City"},
		{"trailing note", "- Night Drive — Neon City (fan favorite)", "Night Drive", "Neon City"},
		{"numbered", "3. Night Drive — Neon City", "Night Drive", "Neon City"},
		{"dash inside title", "- Re-Entry — Orbital Decay", "Re-Entry", "Orbital Decay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseWishlist(strings.NewReader(tt.line))
			if err != nil {
				t.Fatalf("ParseWishlist: %v", err)
			}
			if len(entries) != 1 {
				t.Fatalf("got %d entries, want 1", len(entries))
			}
			e := entries[0]
			if e.Title != tt.title || e.Artist != tt.artist {
				t.Errorf("got %q / %q, want %q / %q", e.Title, e.Artist, tt.title, tt.artist)
			}
		})
	}
}

func TestParseWishlistSkipsNoise(t *testing.T) {
	src := `# Songs to add

- Night Drive — Neon City

random prose that is not a list item
- malformed line without a separator
2. Second Song — Some Artist
`
	entries, err := ParseWishlist(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseWishlist: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Title != "Night Drive" {
		t.Errorf("first entry title = %q", entries[0].Title)
	}
	if entries[1].Title != "Second Song" {
		t.Errorf("second entry title = %q", entries[1].Title)
	}
}

func TestParseWishlistCanonicalizesNumberedLines(t *testing.T) {
	entries, err := ParseWishlist(strings.NewReader("7. Night Drive — Neon City"))
	if err != nil {
		t.Fatalf("ParseWishlist: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	// Progress tracking keys on the bulleted form so renumbering the
	// list does not reset anything.
	if entries[0].Line != "- Night Drive — Neon City" {
		t.Errorf("canonical line = %q", entries[0].Line)
	}
}
