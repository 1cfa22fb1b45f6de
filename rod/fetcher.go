// Package rod renders JavaScript-dependent documentation pages with headless Chrome.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/docset"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds one page render.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements docset.Fetcher at compile time.
var _ docset.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Only use it for pages: the body it returns is the serialized DOM, so
// stylesheets, scripts and images must go through an HTTP fetcher.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *browser
	timeout  time.Duration
	maxPages int
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before Chrome is relaunched.
// Zero disables relaunching.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, err := launchBrowser(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.browser = b
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML, including
// the content of open shadow roots.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", docset.Errorf(docset.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	b, err := f.browser.acquire()
	if err != nil {
		return "", docset.Errorf(docset.EINVALID, "fetcher is closed")
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", unwrapContext(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", unwrapContext(ctx, err)
	}

	res, err := page.Eval(serializeDOM)
	if err != nil {
		return "", unwrapContext(ctx, err)
	}
	return res.Value.Str(), nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}

// unwrapContext prefers the context error so callers can match on
// context.DeadlineExceeded and context.Canceled.
func unwrapContext(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// serializeDOM returns the document HTML with open shadow roots inlined.
const serializeDOM = `() => {
	const html = document.documentElement.getHTML
		? document.documentElement.getHTML({serializableShadowRoots: true, shadowRoots: Array.from(document.querySelectorAll('*')).map(e => e.shadowRoot).filter(Boolean)})
		: document.documentElement.outerHTML;
	const doctype = document.doctype ? '<!DOCTYPE ' + document.doctype.name + '>' : '';
	return doctype + (html.startsWith('<html') ? html : '<html>' + html + '</html>');
}`
