package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// relaunched. Chrome's resident memory only grows across navigations.
const DefaultMaxPages = 75

// browser owns one headless Chrome process and relaunches it every
// maxPages renders. It is safe for concurrent use.
type browser struct {
	mu       sync.Mutex
	b        *rod.Browser
	l        *launcher.Launcher
	rendered int
	maxPages int
}

func launchBrowser(maxPages int) (*browser, error) {
	b := &browser{maxPages: maxPages}
	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// acquire returns the live browser, relaunching it first when the page
// budget is spent, and counts one more render against the budget.
func (b *browser) acquire() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.b == nil {
		return nil, fmt.Errorf("browser closed")
	}
	if b.maxPages > 0 && b.rendered >= b.maxPages {
		old, oldL := b.b, b.l
		if err := b.launch(); err == nil {
			_ = old.Close()
			oldL.Kill()
		} else {
			// keep serving from the old process
			b.b, b.l = old, oldL
		}
		b.rendered = 0
	}
	b.rendered++
	return b.b, nil
}

// launch starts Chrome with flags that keep background tabs responsive.
// Must be called with mu held or before the browser is shared.
func (b *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.b, b.l = rb, l
	return nil
}

func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.b != nil {
		err = b.b.Close()
		b.b = nil
	}
	if b.l != nil {
		b.l.Kill()
		b.l = nil
	}
	return err
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.l == nil {
		return 0
	}
	return b.l.PID()
}
