package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

// Song is the slice of a search result the tooling cares about.
type Song struct {
	ID         string
	Title      string
	Artist     string
	Popularity float64
}

// Client talks to the song API with a bearer token.
type Client struct {
	base  string
	token string
	http  *http.Client
}

func NewClient(base, token string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: base, token: token, http: hc}
}

// SearchSongs runs a public catalog search for the term.
func (c *Client) SearchSongs(ctx context.Context, term string) ([]Song, error) {
	q := url.Values{}
	q.Set("visibilityLevel", "public")
	q.Set("orderBy", "updated_at")
	q.Set("limit", "100")
	q.Set("order", "desc")
	q.Set("searchTerm", term)
	q.Set("difficulty", "")
	q.Set("key", "")

	data, err := c.get(ctx, "/song/list?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	return parseSongs(data), nil
}

// SongDetail fetches the full song record as raw JSON.
func (c *Client) SongDetail(ctx context.Context, songID string) ([]byte, error) {
	data, err := c.get(ctx, "/song/get?songId="+url.QueryEscape(songID))
	if err != nil {
		return nil, fmt.Errorf("song detail %s: %w", songID, err)
	}
	return data, nil
}

// SheetList fetches the sheet index for a song as raw JSON.
func (c *Client) SheetList(ctx context.Context, songID string) ([]byte, error) {
	data, err := c.get(ctx, "/sheet/list?songId="+url.QueryEscape(songID))
	if err != nil {
		return nil, fmt.Errorf("sheet list %s: %w", songID, err)
	}
	return data, nil
}

// Sheet fetches one sheet's note data as raw JSON.
func (c *Client) Sheet(ctx context.Context, sheetID string) ([]byte, error) {
	data, err := c.get(ctx, "/sheet/get?sheetId="+url.QueryEscape(sheetID))
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheetID, err)
	}
	return data, nil
}

// DownloadMedia fetches a media URL, refusing bodies larger than limit
// bytes. Media URLs are absolute and carry their own authorization.
func (c *Client) DownloadMedia(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("media request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media fetch: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("media read: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("media exceeds %d byte limit", limit)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// parseSongs tolerates both a bare array and a {"data": [...]} wrapper.
func parseSongs(data []byte) []Song {
	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get("data")
	}

	var songs []Song
	list.ForEach(func(_, v gjson.Result) bool {
		songs = append(songs, Song{
			ID:         v.Get("id").String(),
			Title:      v.Get("title").String(),
			Artist:     v.Get("artist").String(),
			Popularity: v.Get("popularityScore").Float(),
		})
		return true
	})
	return songs
}
