package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Installer downloads a song into the on-disk repository layout:
//
//	<dir>/<songID>/sheets.json
//	<dir>/<songID>/sheet-<sheetID>.json
//	<dir>/<songID>/cover.jpg
//	<dir>/<songID>/video.mp4
//	<dir>/songs.json        (shared index, updated in place)
type Installer struct {
	Client     *Client
	Dir        string
	MediaLimit int64
}

// songListFields are copied from the song detail into the shared index.
var songListFields = []string{"id", "title", "artist", "image", "popularityScore"}

// Install fetches everything for one song id. Any empty response or
// oversized media aborts the song with an error; nothing is retried.
func (ins *Installer) Install(ctx context.Context, songID string) error {
	detail, err := ins.Client.SongDetail(ctx, songID)
	if err != nil {
		return err
	}
	d := gjson.ParseBytes(detail)
	if d.Get("id").String() == "" {
		return fmt.Errorf("song %s: empty detail response", songID)
	}

	sheets, err := ins.Client.SheetList(ctx, songID)
	if err != nil {
		return err
	}
	sheetList := gjson.ParseBytes(sheets)
	if sheetList.IsObject() {
		sheetList = sheetList.Get("data")
	}
	if !sheetList.IsArray() || len(sheetList.Array()) == 0 {
		return fmt.Errorf("song %s: no sheets", songID)
	}

	dir := filepath.Join(ins.Dir, songID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("song %s: %w", songID, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "sheets.json"), []byte(sheetList.Raw), 0o644); err != nil {
		return fmt.Errorf("song %s: %w", songID, err)
	}

	for _, sheet := range sheetList.Array() {
		sheetID := sheet.Get("id").String()
		if sheetID == "" {
			return fmt.Errorf("song %s: sheet without id", songID)
		}
		body, err := ins.Client.Sheet(ctx, sheetID)
		if err != nil {
			return err
		}
		name := filepath.Join(dir, "sheet-"+sheetID+".json")
		if err := os.WriteFile(name, body, 0o644); err != nil {
			return fmt.Errorf("song %s: %w", songID, err)
		}
	}

	if cover := d.Get("image").String(); cover != "" {
		body, err := ins.Client.DownloadMedia(ctx, cover, ins.MediaLimit)
		if err != nil {
			return fmt.Errorf("song %s cover: %w", songID, err)
		}
		if err := os.WriteFile(filepath.Join(dir, "cover.jpg"), body, 0o644); err != nil {
			return fmt.Errorf("song %s: %w", songID, err)
		}
	}

	video := d.Get("url").String()
	if video == "" {
		return fmt.Errorf("song %s: no video url", songID)
	}
	body, err := ins.Client.DownloadMedia(ctx, video, ins.MediaLimit)
	if err != nil {
		return fmt.Errorf("song %s video: %w", songID, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "video.mp4"), body, 0o644); err != nil {
		return fmt.Errorf("song %s: %w", songID, err)
	}

	if err := updateSongList(filepath.Join(ins.Dir, "songs.json"), d); err != nil {
		return fmt.Errorf("song %s: %w", songID, err)
	}
	return nil
}

// updateSongList upserts the song's index entry, keyed by id.
func updateSongList(path string, detail gjson.Result) error {
	list, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		list = []byte("[]")
	} else if err != nil {
		return err
	}

	entry := "{}"
	for _, field := range songListFields {
		if v := detail.Get(field); v.Exists() {
			entry, err = sjson.Set(entry, field, v.Value())
			if err != nil {
				return err
			}
		}
	}

	id := detail.Get("id").String()
	slot := "-1"
	for i, existing := range gjson.ParseBytes(list).Array() {
		if existing.Get("id").String() == id {
			slot = strconv.Itoa(i)
			break
		}
	}

	out, err := sjson.SetRawBytes(list, slot, []byte(entry))
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
