// Package downloader fetches remote content to be hashed.
package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxDownloadSize bounds how many bytes DownloadFile will read. The core hashes
// whole messages in memory, so the body is never streamed.
const MaxDownloadSize = 256 << 20

// DefaultTimeout applies when the caller's context carries no deadline.
const DefaultTimeout = 60 * time.Second

// DownloadFile fetches the content from the given URL.
// It returns the content as a byte slice or an error if the download fails,
// if the HTTP status code is not 200 OK, or if the body exceeds MaxDownloadSize.
func DownloadFile(ctx context.Context, url string) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build GET request to %s: %w", url, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform GET request to %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download from %s: received status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}
	if len(body) > MaxDownloadSize {
		return nil, fmt.Errorf("response body from %s exceeds %d bytes", url, MaxDownloadSize)
	}

	return body, nil
}
