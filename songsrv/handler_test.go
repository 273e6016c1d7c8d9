package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestMux(dir string) (*http.ServeMux, *Index) {
	ix := NewIndex(dir)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /songs", Songs(ix))
	mux.HandleFunc("GET /songs/{id}/{file}", SongFile(dir))
	mux.HandleFunc("GET /health", Health(ix))
	return mux, ix
}

func writeRepo(t *testing.T, dir, songsJSON string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "songs.json"), []byte(songsJSON), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSongsEndpoint(t *testing.T) {
	dir := t.TempDir()
	writeRepo(t, dir, `[{"id":"song1","title":"Night Drive"}]`)
	mux, _ := newTestMux(dir)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/songs", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("cors header = %q", got)
	}
	if rec.Body.String() != `[{"id":"song1","title":"Night Drive"}]` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestSongsEndpointMissingList(t *testing.T) {
	mux, _ := newTestMux(t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/songs", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSongsEndpointReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeRepo(t, dir, `[]`)
	mux, ix := newTestMux(dir)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/songs", nil))
	if ix.Count() != 0 {
		t.Fatalf("count = %d", ix.Count())
	}

	writeRepo(t, dir, `[{"id":"a"},{"id":"b"}]`)
	// Force a distinct mtime on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(filepath.Join(dir, "songs.json"), future, future); err != nil {
		t.Fatal(err)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/songs", nil))
	if rec.Body.String() != `[{"id":"a"},{"id":"b"}]` {
		t.Errorf("body after reload = %s", rec.Body.String())
	}
	if ix.Count() != 2 {
		t.Errorf("count after reload = %d", ix.Count())
	}
}

func TestSongFileEndpoint(t *testing.T) {
	dir := t.TempDir()
	songDir := filepath.Join(dir, "song1")
	if err := os.MkdirAll(songDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(songDir, "sheets.json"), []byte(`[{"id":"s1"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	mux, _ := newTestMux(dir)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/songs/song1/sheets.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != `[{"id":"s1"}]` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestSongFileRejectsUnknownNames(t *testing.T) {
	dir := t.TempDir()
	mux, _ := newTestMux(dir)

	for _, path := range []string{
		"/songs/song1/secrets.txt",
		"/songs/song1/sheet-..%2Fother.json",
		"/songs/..%2Fsong1/sheets.json",
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, rec.Code)
		}
	}
}

func TestHealth(t *testing.T) {
	dir := t.TempDir()
	writeRepo(t, dir, `[{"id":"a"}]`)
	mux, ix := newTestMux(dir)

	// Health reports the count from the last load.
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/songs", nil))
	if ix.Count() != 1 {
		t.Fatalf("count = %d", ix.Count())
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok","songs":1}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}
