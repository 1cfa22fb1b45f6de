package crawl

import (
	"strings"
	"sync"

	"github.com/fwojciec/docset"
	"github.com/fwojciec/docset/bloom"
)

// Compile-time interface verification.
var _ docset.CrawlState = (*State)(nil)

// State records the mirror pages scheduled during one run.
// It is safe for concurrent use by multiple goroutines.
type State struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	exact map[string]struct{}
}

// NewState creates a State sized for n expected pages with the given
// false positive rate for its Bloom filter.
func NewState(n uint, fpRate float64) *State {
	return &State{
		seen:  bloom.NewFilter(n, fpRate),
		exact: make(map[string]struct{}),
	}
}

// Schedule records path and returns false if it was already recorded.
// Fragments are stripped, so pages differing only by anchor are the same page.
// The Bloom filter answers the common "new page" case; a positive is
// confirmed against the exact set so false positives never drop a page.
func (s *State) Schedule(path string) bool {
	path = stripFragment(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seen.TestAndAdd(path) {
		if _, ok := s.exact[path]; ok {
			return false
		}
	}
	s.exact[path] = struct{}{}
	return true
}

func stripFragment(path string) string {
	if idx := strings.Index(path, "#"); idx != -1 {
		return path[:idx]
	}
	return path
}
