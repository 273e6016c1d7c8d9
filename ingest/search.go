package ingest

import (
	"regexp"
	"sort"
	"strings"
)

var (
	parenRe  = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	punctRe  = regexp.MustCompile(`[^\w\s]`)
	spacesRe = regexp.MustCompile(`\s+`)
	featRe   = regexp.MustCompile(`(?i)\s*ft\.?\s+.*$`)
	collabRe = regexp.MustCompile(`(?i)\s+x\s+.*$`)
)

// CleanTitle strips parenthetical notes and collapses whitespace.
func CleanTitle(title string) string {
	t := parenRe.ReplaceAllString(title, " ")
	return strings.TrimSpace(spacesRe.ReplaceAllString(t, " "))
}

// cleanArtist keeps the lead artist: the first of a slash-separated list,
// with "ft. X" and "x Y" collaborators dropped.
func cleanArtist(artist string) string {
	a := strings.TrimSpace(strings.SplitN(artist, "/", 2)[0])
	a = featRe.ReplaceAllString(a, "")
	a = collabRe.ReplaceAllString(a, "")
	return strings.TrimSpace(a)
}

func simplify(s string) string {
	s = punctRe.ReplaceAllString(s, "")
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

// Normalize lowercases and strips punctuation for title comparison.
func Normalize(s string) string {
	return simplify(strings.ToLower(s))
}

// TitleMatches reports whether the wishlist title and a search result
// title refer to the same song: either normalized form contains the other.
func TitleMatches(searchTitle, resultTitle string) bool {
	sn := Normalize(searchTitle)
	rn := Normalize(resultTitle)
	if sn == "" || rn == "" {
		return false
	}
	return strings.Contains(rn, sn) || strings.Contains(sn, rn)
}

// SearchQueries builds the query ladder for a song, most specific first,
// deduplicated. Callers try each until one returns results.
func SearchQueries(title, artist string) []string {
	titleClean := CleanTitle(title)
	artistClean := cleanArtist(artist)
	titleSimple := simplify(titleClean)
	artistSimple := simplify(artistClean)

	queries := []string{
		titleClean,
		titleClean + " " + artistClean,
		titleSimple,
		titleSimple + " " + artistSimple,
		artistClean,
	}

	// Loosest rung: the first significant word of the title.
	if words := strings.Fields(titleSimple); len(words) > 0 && len(words[0]) > 3 {
		queries = append(queries, words[0])
	}

	seen := make(map[string]bool, len(queries))
	var unique []string
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		unique = append(unique, q)
	}
	return unique
}

// RankCandidates filters results to normalized-title matches and orders
// them by popularity score descending. Ties keep the API's result order,
// which reflects recency.
func RankCandidates(results []Song, title string) []Song {
	clean := CleanTitle(title)

	var matching []Song
	for _, r := range results {
		if TitleMatches(clean, r.Title) {
			matching = append(matching, r)
		}
	}

	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Popularity > matching[j].Popularity
	})
	return matching
}

// DedupeByID keeps the first occurrence of each song id, preserving order.
func DedupeByID(results []Song) []Song {
	seen := make(map[string]bool, len(results))
	var out []Song
	for _, r := range results {
		if r.ID == "" || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}
