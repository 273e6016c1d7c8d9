package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

func main() {
	port := flag.Int("port", 8090, "HTTP listen port")
	dir := flag.String("dir", defaultDir(), "Song repository directory")
	flag.Parse()

	ix := NewIndex(*dir)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /songs", Songs(ix))
	mux.HandleFunc("GET /songs/{id}/{file}", SongFile(*dir))
	mux.HandleFunc("GET /health", Health(ix))

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("[songsrv] serving %s on %s", *dir, addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("[songsrv] fatal: %v", err)
	}
}

func defaultDir() string {
	if dir := os.Getenv("CABBRIDGE_SONG_DIR"); dir != "" {
		return dir
	}
	return "songs"
}
