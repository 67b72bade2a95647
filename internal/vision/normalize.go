package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const defaultMimeType = "image/jpeg"

var dataURLPrefix = regexp.MustCompile(`^data:(image/[\w.+-]+);base64,`)

// Normalizer converts a user-supplied photo reference into a canonical
// (binary payload, media type) pair. The reference is either an http(s) URL
// or a base64 payload with an optional data-URL prefix.
type Normalizer struct {
	httpClient *http.Client
}

func NewNormalizer(client *http.Client) *Normalizer {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Normalizer{httpClient: client}
}

// Normalize returns the decoded image bytes and their media type. Pure aside
// from the fetch when the reference is a URL.
func (n *Normalizer) Normalize(ctx context.Context, source string) ([]byte, string, error) {
	if isURL(source) {
		return n.fetch(ctx, source)
	}

	mimeType := defaultMimeType
	if m := dataURLPrefix.FindStringSubmatch(source); m != nil {
		mimeType = m[1]
		source = source[len(m[0]):]
	}

	data, err := base64.StdEncoding.DecodeString(source)
	if err != nil {
		return nil, "", fmt.Errorf("decode image data: %w", err)
	}
	return data, mimeType, nil
}

func (n *Normalizer) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create fetch request: %w", err)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &FetchError{Status: resp.StatusCode, StatusText: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read image body: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	return data, mimeType, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
