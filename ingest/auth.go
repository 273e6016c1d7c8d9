package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// AnonymousToken signs up an anonymous Firebase user and returns the
// bearer token the song API accepts. endpoint is the identity toolkit
// signUp URL; apiKey is the project's web API key.
func AnonymousToken(ctx context.Context, hc *http.Client, endpoint, apiKey string) (string, error) {
	if hc == nil {
		hc = http.DefaultClient
	}

	body := strings.NewReader(`{"returnSecureToken":true}`)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?key="+apiKey, body)
	if err != nil {
		return "", fmt.Errorf("auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("auth read: %w", err)
	}

	token := gjson.GetBytes(data, "idToken").String()
	if token == "" {
		return "", fmt.Errorf("auth: response carries no idToken")
	}
	return token, nil
}
