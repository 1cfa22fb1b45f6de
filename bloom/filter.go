// Package bloom provides a probabilistic set for page path deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by strings.
// A Filter is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected keys
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd adds key and reports whether it might already have been present.
func (f *Filter) TestAndAdd(key string) bool {
	return f.f.TestAndAddString(key)
}
