package docset

import "context"

// CrawlState tracks which mirror pages a run has already scheduled.
type CrawlState interface {
	// Schedule records path and returns false if it was already recorded.
	Schedule(path string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
