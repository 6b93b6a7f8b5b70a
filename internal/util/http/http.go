// Package http fetches the remote resources Chromaflow pulls in:
// wallpaper images and Marble theme archives.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"chromaflow/internal/version"
)

// DefaultTimeout bounds a whole download. Wallpapers and theme archives
// are a few megabytes; half a minute is generous.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response Fetch buffers, so a
// misbehaving server cannot exhaust memory. 128 MiB clears any plausible
// wallpaper or theme archive.
const maxBodySize = 128 << 20

var client = &http.Client{Timeout: DefaultTimeout}

// Fetch downloads url into memory. The request carries a
// chromaflow/<version> User-Agent and honours ctx cancellation.
// Responses other than 200 OK fail, as do bodies over maxBodySize.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "chromaflow/"+version.Version)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) > maxBodySize {
		return nil, fmt.Errorf("response body exceeds %d byte limit", maxBodySize)
	}

	return data, nil
}
