package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/docset"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// RetryDelays returns the first n delays of an exponential backoff starting at 1s.
func RetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	d := time.Second
	for range n {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// FetchWithRetryDelays calls fetch until it succeeds, sleeping delays[i]
// before retry i+1. With no delays it makes exactly one attempt.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

var _ docset.Fetcher = (*RetryingFetcher)(nil)

// RetryingFetcher retries failed fetches with fixed backoff delays.
type RetryingFetcher struct {
	next   docset.Fetcher
	delays []time.Duration
	logger LogFunc
}

// NewRetryingFetcher wraps next. logger may be nil.
func NewRetryingFetcher(next docset.Fetcher, delays []time.Duration, logger LogFunc) *RetryingFetcher {
	return &RetryingFetcher{next: next, delays: delays, logger: logger}
}

// Fetch delegates to the wrapped fetcher, retrying on error.
func (f *RetryingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return FetchWithRetryDelays(ctx, url, f.next.Fetch, f.logger, f.delays)
}

// Close delegates to the wrapped fetcher.
func (f *RetryingFetcher) Close() error {
	return f.next.Close()
}
