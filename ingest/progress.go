package ingest

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
)

// AddRecord marks a wishlist song that was downloaded successfully.
type AddRecord struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	SongID string `json:"songId"`
}

// SkipRecord marks a song that was skipped or failed, with the reason.
type SkipRecord struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Reason string `json:"reason"`
}

// Progress is the resumable state of a wishlist run. Processed holds
// canonical wishlist lines; a line present there is never retried.
type Progress struct {
	Processed []string     `json:"processed"`
	Added     []AddRecord  `json:"added"`
	Failed    []SkipRecord `json:"failed"`
	Skipped   []SkipRecord `json:"skipped"`
}

// IsProcessed reports whether a wishlist line was already handled.
func (p *Progress) IsProcessed(line string) bool {
	for _, l := range p.Processed {
		if l == line {
			return true
		}
	}
	return false
}

// MarkProcessed appends the line once.
func (p *Progress) MarkProcessed(line string) {
	if !p.IsProcessed(line) {
		p.Processed = append(p.Processed, line)
	}
}

// DropSkip removes any earlier skip entries for the title, used when a
// previously skipped song is added after all.
func (p *Progress) DropSkip(title string) {
	kept := p.Skipped[:0]
	for _, s := range p.Skipped {
		if s.Title != title {
			kept = append(kept, s)
		}
	}
	p.Skipped = kept
}

// Remaining filters the wishlist down to unprocessed entries, in order.
func Remaining(entries []Entry, p *Progress) []Entry {
	var out []Entry
	for _, e := range entries {
		if !p.IsProcessed(e.Line) {
			out = append(out, e)
		}
	}
	return out
}

const progressItem = "progress"

// ProgressStore persists Progress between runs.
type ProgressStore struct {
	m *gdata.Manager
}

// OpenProgressStore opens the local progress store.
func OpenProgressStore() (*ProgressStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: "cabbridge-songtool",
	})
	if err != nil {
		return nil, err
	}
	return &ProgressStore{m: m}, nil
}

// Load returns the stored progress, or a fresh record when none exists
// or the stored one is unreadable.
func (ps *ProgressStore) Load() *Progress {
	p := &Progress{}

	data, err := ps.m.LoadItem(progressItem)
	if err != nil {
		log.Printf("Warning: Could not load progress: %v", err)
		return p
	}
	if data == nil {
		return p
	}

	if err := json.Unmarshal(data, p); err != nil {
		log.Printf("Warning: Could not parse progress: %v", err)
		return &Progress{}
	}
	return p
}

// Save writes the progress record.
func (ps *ProgressStore) Save(p *Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return ps.m.SaveItem(progressItem, data)
}

// Reset clears all progress.
func (ps *ProgressStore) Reset() error {
	return ps.Save(&Progress{})
}
