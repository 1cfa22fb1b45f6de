package docset

import "context"

// Fetcher retrieves the body of a URL.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch returns the raw body of url. Binary bodies are returned
	// byte-for-byte in the string.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases underlying resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
