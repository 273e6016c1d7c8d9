package main

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
)

// servedFiles whitelists what a song directory exposes. Everything else
// in the repository stays private.
func servedFile(name string) bool {
	switch {
	case name == "sheets.json", name == "cover.jpg", name == "video.mp4":
		return true
	case strings.HasPrefix(name, "sheet-") && strings.HasSuffix(name, ".json"):
		return !strings.ContainsAny(strings.TrimSuffix(strings.TrimPrefix(name, "sheet-"), ".json"), "./\\")
	}
	return false
}

func cleanID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "./\\")
}

func Songs(ix *Index) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		data, err := ix.Songs()
		if err != nil {
			log.Printf("[songsrv] song list: %v", err)
			http.Error(w, `{"error":"song list unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(data)
	}
}

func SongFile(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")

		id := r.PathValue("id")
		file := r.PathValue("file")
		if !cleanID(id) || !servedFile(file) {
			http.NotFound(w, r)
			return
		}

		http.ServeFile(w, r, filepath.Join(dir, id, file))
	}
}

func Health(ix *Index) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"status":"ok","songs":%d}`, ix.Count())
	}
}
