package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/arcadeloop/cabbridge/ingest"
)

func main() {
	status := flag.Bool("status", false, "Show current progress status")
	reset := flag.Bool("reset", false, "Reset progress and start over")
	preview := flag.Int("preview", 0, "Preview search queries for the next N songs")
	dryRun := flag.Bool("dry-run", false, "Search the API but do not download anything")
	searchOnly := flag.Bool("search-only", false, "Search and save candidates without downloading")
	downloadFrom := flag.String("download-from", "", "Download using selectedId values from a candidates file")
	markUnselected := flag.Bool("mark-unselected-skipped", false, "With -download-from, mark entries without selectedId as skipped")
	output := flag.String("o", ".song_candidates.json", "Output file for -search-only")
	top := flag.Int("top", 5, "Candidates to save per song in -search-only")
	flag.Parse()

	count := 1
	if flag.NArg() > 0 {
		n, err := strconv.Atoi(flag.Arg(0))
		if err != nil || n < 1 {
			log.Fatalf("[songtool] invalid count %q", flag.Arg(0))
		}
		count = n
	}

	cfg, err := ingest.LoadConfig()
	if err != nil {
		log.Fatalf("[songtool] config: %v", err)
	}

	store, err := ingest.OpenProgressStore()
	if err != nil {
		log.Fatalf("[songtool] progress store: %v", err)
	}

	if *reset {
		if err := store.Reset(); err != nil {
			log.Fatalf("[songtool] reset: %v", err)
		}
		fmt.Println("Progress reset.")
		return
	}

	songs, err := ingest.LoadWishlist(cfg.Wishlist)
	if err != nil {
		log.Fatalf("[songtool] wishlist: %v", err)
	}
	progress := store.Load()

	if *status {
		showStatus(songs, progress)
		return
	}
	if *preview > 0 {
		previewSearches(songs, progress, *preview)
		return
	}
	if *searchOnly && *downloadFrom != "" {
		log.Fatalf("[songtool] choose either -search-only or -download-from, not both")
	}

	ctx := context.Background()
	run := &runner{
		cfg:      cfg,
		store:    store,
		progress: progress,
		http:     &http.Client{Timeout: 60 * time.Second},
	}

	switch {
	case *searchOnly:
		err = run.searchOnly(ctx, songs, count, *top, *output)
	case *downloadFrom != "":
		err = run.downloadFrom(ctx, songs, *downloadFrom, *markUnselected)
	default:
		err = run.process(ctx, songs, count, *dryRun)
	}
	if err != nil {
		log.Fatalf("[songtool] %v", err)
	}
}

type runner struct {
	cfg      ingest.Config
	store    *ingest.ProgressStore
	progress *ingest.Progress
	http     *http.Client

	client *ingest.Client
}

// connect signs in anonymously and builds the API client.
func (r *runner) connect(ctx context.Context) error {
	fmt.Println("Getting auth token...")
	token, err := ingest.AnonymousToken(ctx, r.http, r.cfg.FirebaseEndpoint, r.cfg.FirebaseKey)
	if err != nil {
		return err
	}
	fmt.Println("Got auth token")
	fmt.Println()

	r.client = ingest.NewClient(r.cfg.APIBase, token, r.http)
	return nil
}

func (r *runner) installer() *ingest.Installer {
	return &ingest.Installer{
		Client:     r.client,
		Dir:        r.cfg.SongDir,
		MediaLimit: r.cfg.MediaLimit,
	}
}

// collect runs the query ladder until a query returns results, then
// ranks the title matches. usedQuery is empty when nothing came back.
func (r *runner) collect(ctx context.Context, title, artist string) (matches []ingest.Song, total int, usedQuery string) {
	for _, q := range ingest.SearchQueries(title, artist) {
		results, err := r.client.SearchSongs(ctx, q)
		if err != nil {
			fmt.Printf("  Error searching %q: %v\n", q, err)
			continue
		}
		if len(results) == 0 {
			continue
		}
		results = ingest.DedupeByID(results)
		return ingest.RankCandidates(results, title), len(results), q
	}
	return nil, 0, ""
}

func (r *runner) save() {
	if err := r.store.Save(r.progress); err != nil {
		log.Printf("Warning: Could not save progress: %v", err)
	}
}

func (r *runner) process(ctx context.Context, songs []ingest.Entry, count int, dryRun bool) error {
	remaining := ingest.Remaining(songs, r.progress)
	if len(remaining) == 0 {
		fmt.Println("All songs have been processed!")
		showStatus(songs, r.progress)
		return nil
	}
	if count > len(remaining) {
		count = len(remaining)
	}
	toProcess := remaining[:count]

	fmt.Printf("Processing %d song(s)...\n", len(toProcess))
	fmt.Printf("(%d remaining total)\n\n", len(remaining))

	if err := r.connect(ctx); err != nil {
		return err
	}

	for i, entry := range toProcess {
		fmt.Printf("[%d/%d] ", i+1, len(toProcess))
		r.processSong(ctx, entry, dryRun)
		fmt.Println()
	}

	showStatus(songs, r.progress)
	return nil
}

func (r *runner) processSong(ctx context.Context, entry ingest.Entry, dryRun bool) {
	fmt.Printf("Processing: %s — %s\n", entry.Title, entry.Artist)

	matches, total, usedQuery := r.collect(ctx, entry.Title, entry.Artist)
	switch {
	case usedQuery == "":
		fmt.Println("  No results found")
		r.skip(entry, "No results found")
		return
	case len(matches) == 0:
		fmt.Printf("  Found %d results but none matched the title\n", total)
		r.skip(entry, "No title match")
		return
	}

	fmt.Printf("  Found %d matching results (from %d total)\n", len(matches), total)

	for _, m := range matches {
		fmt.Printf("  Trying: %s by %s (popularity: %.0f, id: %s)\n", m.Title, m.Artist, m.Popularity, m.ID)
		if dryRun {
			fmt.Println("  [DRY RUN] Would download this song")
			return
		}

		if err := r.installer().Install(ctx, m.ID); err != nil {
			fmt.Printf("  Failed: %v\n", err)
			continue
		}

		fmt.Println("  Added successfully!")
		r.progress.Added = append(r.progress.Added, ingest.AddRecord{
			Title: entry.Title, Artist: entry.Artist, SongID: m.ID,
		})
		r.progress.MarkProcessed(entry.Line)
		r.progress.DropSkip(entry.Title)
		r.save()
		return
	}

	fmt.Println("  All candidates failed")
	r.progress.Failed = append(r.progress.Failed, ingest.SkipRecord{
		Title: entry.Title, Artist: entry.Artist, Reason: "All candidates failed",
	})
	r.progress.MarkProcessed(entry.Line)
	r.save()
}

func (r *runner) skip(entry ingest.Entry, reason string) {
	r.progress.Skipped = append(r.progress.Skipped, ingest.SkipRecord{
		Title: entry.Title, Artist: entry.Artist, Reason: reason,
	})
	r.progress.MarkProcessed(entry.Line)
	r.save()
}

func (r *runner) searchOnly(ctx context.Context, songs []ingest.Entry, count, top int, output string) error {
	remaining := ingest.Remaining(songs, r.progress)
	if len(remaining) == 0 {
		fmt.Println("All songs have been processed!")
		showStatus(songs, r.progress)
		return nil
	}
	if count > len(remaining) {
		count = len(remaining)
	}
	toProcess := remaining[:count]

	fmt.Printf("Searching for %d song(s)...\n", len(toProcess))
	fmt.Printf("(%d remaining total)\n\n", len(remaining))

	if err := r.connect(ctx); err != nil {
		return err
	}

	var collected []ingest.CandidateSet
	for _, entry := range toProcess {
		fmt.Printf("Searching candidates for: %s — %s\n", entry.Title, entry.Artist)

		matches, _, usedQuery := r.collect(ctx, entry.Title, entry.Artist)
		if len(matches) > top {
			matches = matches[:top]
		}

		set := ingest.CandidateSet{
			Title:        entry.Title,
			Artist:       entry.Artist,
			Line:         entry.Line,
			MatchedQuery: usedQuery,
		}
		for _, m := range matches {
			set.Candidates = append(set.Candidates, ingest.Candidate{
				ID: m.ID, Title: m.Title, Artist: m.Artist, Popularity: m.Popularity,
			})
		}
		collected = append(collected, set)

		if len(set.Candidates) == 0 {
			fmt.Println("  No matching candidates found.")
		}
		for i, c := range set.Candidates {
			fmt.Printf("  %d. %s — %s (id: %s, popularity: %.0f)\n", i+1, c.Title, c.Artist, c.ID, c.Popularity)
		}
		fmt.Println()
	}

	if err := ingest.SaveCandidates(output, collected); err != nil {
		return err
	}
	fmt.Printf("Saved candidates to %s\n", output)
	fmt.Println(`Edit the file to set "selectedId" for each song, then run:`)
	fmt.Printf("  songtool -download-from %s\n", output)
	return nil
}

func (r *runner) downloadFrom(ctx context.Context, songs []ingest.Entry, path string, markUnselected bool) error {
	sets, err := ingest.LoadCandidates(path)
	if err != nil {
		return err
	}

	fmt.Printf("Downloading from candidates file: %s\n\n", path)
	if err := r.connect(ctx); err != nil {
		return err
	}

	addedAny := false
	for _, set := range sets {
		entry := ingest.Entry{Title: set.Title, Artist: set.Artist, Line: set.Line}
		if entry.Line == "" {
			entry.Line = fmt.Sprintf("- %s — %s", set.Title, set.Artist)
		}

		if r.progress.IsProcessed(entry.Line) {
			fmt.Printf("Skipping %s — %s: already processed.\n", set.Title, set.Artist)
			continue
		}

		if set.SelectedID == "" {
			if markUnselected {
				fmt.Printf("Skipping %s — %s: no selectedId set (marking as skipped).\n", set.Title, set.Artist)
				r.progress.DropSkip(set.Title)
				r.skip(entry, "No selectedId in candidates")
			} else {
				fmt.Printf("Skipping %s — %s: no selectedId set.\n", set.Title, set.Artist)
			}
			continue
		}

		fmt.Printf("Processing: %s — %s (id: %s)\n", set.Title, set.Artist, set.SelectedID)
		if err := r.installer().Install(ctx, set.SelectedID); err != nil {
			fmt.Printf("  Failed: %v\n", err)
			r.progress.Failed = append(r.progress.Failed, ingest.SkipRecord{
				Title: set.Title, Artist: set.Artist,
				Reason: fmt.Sprintf("Failed with id %s", set.SelectedID),
			})
			r.progress.MarkProcessed(entry.Line)
			r.save()
			continue
		}

		fmt.Println("  Added successfully!")
		r.progress.Added = append(r.progress.Added, ingest.AddRecord{
			Title: set.Title, Artist: set.Artist, SongID: set.SelectedID,
		})
		r.progress.MarkProcessed(entry.Line)
		r.progress.DropSkip(set.Title)
		r.save()
		addedAny = true
		fmt.Println()
	}

	if !addedAny {
		fmt.Println("No songs were added. Set selectedId in the candidates file and try again.")
	}
	showStatus(songs, r.progress)
	return nil
}

func showStatus(songs []ingest.Entry, progress *ingest.Progress) {
	remaining := ingest.Remaining(songs, progress)

	fmt.Printf("Total songs:   %d\n", len(songs))
	fmt.Printf("Added:         %d\n", len(progress.Added))
	fmt.Printf("Failed:        %d\n", len(progress.Failed))
	fmt.Printf("Skipped:       %d\n", len(progress.Skipped))
	fmt.Printf("Remaining:     %d\n\n", len(remaining))

	if len(remaining) == 0 {
		return
	}
	fmt.Println("Next up:")
	for i, e := range remaining {
		if i == 5 {
			fmt.Printf("  ... and %d more\n", len(remaining)-5)
			break
		}
		fmt.Printf("  - %s — %s\n", e.Title, e.Artist)
	}
}

func previewSearches(songs []ingest.Entry, progress *ingest.Progress, count int) {
	remaining := ingest.Remaining(songs, progress)
	if count > len(remaining) {
		count = len(remaining)
	}
	for _, e := range remaining[:count] {
		fmt.Printf("%s — %s\n", e.Title, e.Artist)
		for i, q := range ingest.SearchQueries(e.Title, e.Artist) {
			fmt.Printf("  %d. %q\n", i+1, q)
		}
		fmt.Println()
	}
}
