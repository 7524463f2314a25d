package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fetchAttempts is the number of tries before a download gives up.
const fetchAttempts = 3

// isRemote reports whether a table source is an http(s) URL.
func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// fetchSource downloads url into dir with retries and returns the local path.
func fetchSource(ctx context.Context, url, dir string) (string, error) {
	dest := filepath.Join(dir, "source.txt")
	client := &http.Client{Timeout: 5 * time.Minute}

	var lastErr error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * retryBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}

		f, err := os.Create(dest)
		if err != nil {
			resp.Body.Close()
			return "", fmt.Errorf("create file: %w", err)
		}
		_, copyErr := io.Copy(f, resp.Body)
		resp.Body.Close()
		closeErr := f.Close()

		if copyErr != nil {
			lastErr = copyErr
			continue
		}
		if closeErr != nil {
			return "", closeErr
		}
		return dest, nil
	}
	return "", fmt.Errorf("download %s failed after %d attempts: %w", url, fetchAttempts, lastErr)
}

// retryBase is the first backoff delay; tests shorten it.
var retryBase = time.Second
