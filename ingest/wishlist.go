package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Entry is one wishlist song. Line keeps the canonical bullet form so
// progress tracking survives renumbering of the source list.
type Entry struct {
	Title  string
	Artist string
	Line   string
}

var (
	numberedRe = regexp.MustCompile(`^\d+\.\s+(.*)$`)
	emDashRe   = regexp.MustCompile(`^- (.+?) — (.+?)(?:\s*\(|$)`)
	dashRe     = regexp.MustCompile(`^- (.+?) - (.+?)(?:\s*\(|$)`)
)

// ParseWishlist reads a markdown song list. Bulleted and numbered items
// are accepted, with either an em dash or a plain dash between title and
// artist. A trailing parenthetical note is dropped. Headings and blank
// lines are skipped.
func ParseWishlist(r io.Reader) ([]Entry, error) {
	var entries []Entry

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		canonical := raw
		if !strings.HasPrefix(raw, "- ") {
			m := numberedRe.FindStringSubmatch(raw)
			if m == nil {
				continue
			}
			canonical = "- " + strings.TrimSpace(m[1])
		}

		title, artist := splitEntry(canonical)
		if title == "" || artist == "" {
			continue
		}
		entries = append(entries, Entry{Title: title, Artist: artist, Line: canonical})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read wishlist: %w", err)
	}
	return entries, nil
}

// LoadWishlist parses the wishlist file at path.
func LoadWishlist(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wishlist: %w", err)
	}
	defer f.Close()
	return ParseWishlist(f)
}

func splitEntry(line string) (title, artist string) {
	// Em dash first; a plain dash can legitimately appear inside titles.
	if m := emDashRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	if m := dashRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return "", ""
}
