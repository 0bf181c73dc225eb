package ocr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

func hasURLScheme(uri string) bool {
	lower := strings.ToLower(strings.TrimSpace(uri))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// downloadToTemp fetches a remote document into a transient local file.
// The caller must invoke cleanup on every exit path; cleanup is always
// non-nil, even on error.
func (c *Client) downloadToTemp(ctx context.Context, url string) (path string, cleanup func(), err error) {
	cleanup = func() {}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", cleanup, fmt.Errorf("build download request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", cleanup, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", cleanup, fmt.Errorf("download %s: status %s", url, resp.Status)
	}

	f, err := os.CreateTemp("", "ocr-download-*"+fileExt(url))
	if err != nil {
		return "", cleanup, fmt.Errorf("create temp file: %w", err)
	}
	cleanup = func() { os.Remove(f.Name()) }

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return "", cleanup, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", cleanup, fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), cleanup, nil
}

func fileExt(url string) string {
	trimmed := url
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if i := strings.LastIndex(trimmed, "."); i >= 0 {
		ext := trimmed[i:]
		if len(ext) <= 6 && !strings.Contains(ext, "/") {
			return ext
		}
	}
	return ""
}
