package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrStatus is wrapped by errors for HTTP responses with status >= 400
var ErrStatus = errors.New("bad response from server")

// maxImageBytes caps how much of one response is read
const maxImageBytes = 32 << 20

// fetcher reads image bytes from HTTP(S) URLs or local paths
type fetcher struct {
	httpClient *http.Client
	cache      *Cache
	attempts   int
	backoff    time.Duration
	userAgent  string
}

// newFetcher creates a fetcher. cache may be nil.
func newFetcher(timeout time.Duration, attempts int, backoff time.Duration, cache *Cache) *fetcher {
	return &fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:     cache,
		attempts:  attempts,
		backoff:   backoff,
		userAgent: "imagewall/1.0",
	}
}

func isRemote(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// fetch returns the raw bytes behind url and whether they came from the cache.
// Fetched bytes are not cached here; callers store them once they decode.
func (f *fetcher) fetch(ctx context.Context, url string) ([]byte, bool, error) {
	if !isRemote(url) {
		data, err := os.ReadFile(strings.TrimPrefix(url, "file://"))
		if err != nil {
			return nil, false, fmt.Errorf("failed to read image file: %w", err)
		}
		return data, false, nil
	}

	if f.cache != nil {
		if data, ok, err := f.cache.Get(url); err == nil && ok {
			return data, true, nil
		}
	}

	var data []byte
	err := retry(ctx, f.attempts, f.backoff, func() error {
		var err error
		data, err = f.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return data, false, nil
}

// store caches bytes that were fetched from url and decoded. A failed write
// only costs a refetch next time.
func (f *fetcher) store(url string, data []byte) {
	if f.cache == nil || !isRemote(url) {
		return
	}
	_ = f.cache.Set(url, data)
}

// evict drops a cached entry that turned out not to decode
func (f *fetcher) evict(url string) {
	if f.cache == nil {
		return
	}
	_ = f.cache.Delete(url)
}

func (f *fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("%w: %s", ErrStatus, resp.Status)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, &RetryableError{Err: err, After: retryAfter(resp.Header)}
		}
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return data, nil
}
