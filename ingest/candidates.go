package ingest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Candidate is one ranked search result saved for operator review.
type Candidate struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Popularity float64 `json:"popularityScore"`
}

// CandidateSet pairs a wishlist entry with its ranked candidates. The
// operator edits SelectedID before the download run.
type CandidateSet struct {
	Title        string      `json:"title"`
	Artist       string      `json:"artist"`
	Line         string      `json:"original_line"`
	Candidates   []Candidate `json:"candidates"`
	SelectedID   string      `json:"selectedId"`
	MatchedQuery string      `json:"matchedQuery"`
}

// SaveCandidates writes the review file, pretty-printed for hand editing.
func SaveCandidates(path string, sets []CandidateSet) error {
	data, err := json.MarshalIndent(sets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode candidates: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write candidates: %w", err)
	}
	return nil
}

// LoadCandidates reads a review file written by SaveCandidates.
func LoadCandidates(path string) ([]CandidateSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}
	var sets []CandidateSet
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("parse candidates: %w", err)
	}
	return sets, nil
}
