// Package bigcache memoizes fetched resources in an in-process cache.
package bigcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/fwojciec/docset"
)

// DefaultLifeWindow is how long a cached resource stays valid. A mirror
// run is far shorter, so entries effectively live for the whole run.
const DefaultLifeWindow = time.Hour

var _ docset.Fetcher = (*CachingFetcher)(nil)

// CachingFetcher serves repeated fetches of the same URL from memory.
// Every page of a Sphinx site links the same stylesheets and scripts, so
// the resource fetcher used by the inliner is wrapped with one of these.
// Failed fetches are not cached.
type CachingFetcher struct {
	next  docset.Fetcher
	cache *bigcache.BigCache
}

// Option configures the cache.
type Option func(*bigcache.Config)

// WithMaxSizeMB caps the cache size in megabytes. Zero means unbounded.
func WithMaxSizeMB(mb int) Option {
	return func(c *bigcache.Config) {
		c.HardMaxCacheSize = mb
	}
}

// NewCachingFetcher wraps next with a bigcache-backed memo.
func NewCachingFetcher(ctx context.Context, next docset.Fetcher, opts ...Option) (*CachingFetcher, error) {
	cfg := bigcache.DefaultConfig(DefaultLifeWindow)
	cfg.Shards = 64
	cfg.MaxEntrySize = 64 * 1024
	cfg.Verbose = false
	cfg.HardMaxCacheSize = 256
	for _, opt := range opts {
		opt(&cfg)
	}

	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &CachingFetcher{next: next, cache: cache}, nil
}

// Fetch returns the cached body for url, fetching it on a miss.
func (f *CachingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if b, err := f.cache.Get(url); err == nil {
		return string(b), nil
	} else if !errors.Is(err, bigcache.ErrEntryNotFound) {
		return "", fmt.Errorf("cache get %s: %w", url, err)
	}

	body, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	// A full cache only costs a refetch later.
	_ = f.cache.Set(url, []byte(body))
	return body, nil
}

// Len returns the number of cached resources.
func (f *CachingFetcher) Len() int {
	return f.cache.Len()
}

// Close releases the cache and closes the wrapped fetcher.
func (f *CachingFetcher) Close() error {
	return errors.Join(f.cache.Close(), f.next.Close())
}
