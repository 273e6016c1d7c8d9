package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

// Index caches the repository's songs.json in memory and reloads it when
// the file's mtime changes, so songtool runs show up without a restart.
type Index struct {
	mu    sync.RWMutex
	path  string
	data  []byte
	mtime time.Time
	count int
}

func NewIndex(dir string) *Index {
	return &Index{path: filepath.Join(dir, "songs.json")}
}

// Songs returns the current song list JSON.
func (ix *Index) Songs() ([]byte, error) {
	info, err := os.Stat(ix.path)
	if err != nil {
		return nil, fmt.Errorf("stat song list: %w", err)
	}

	ix.mu.RLock()
	fresh := ix.data != nil && info.ModTime().Equal(ix.mtime)
	data := ix.data
	ix.mu.RUnlock()
	if fresh {
		return data, nil
	}

	return ix.reload(info.ModTime())
}

func (ix *Index) reload(mtime time.Time) ([]byte, error) {
	data, err := os.ReadFile(ix.path)
	if err != nil {
		return nil, fmt.Errorf("read song list: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("song list is not valid json")
	}

	ix.mu.Lock()
	ix.data = data
	ix.mtime = mtime
	ix.count = len(gjson.ParseBytes(data).Array())
	ix.mu.Unlock()
	return data, nil
}

// Count returns the number of indexed songs, 0 before the first load.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.count
}
