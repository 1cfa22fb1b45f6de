// Package crawl provides docset build orchestration.
// It coordinates fetching the root and index pages, extracting symbol
// entries, mirroring the referenced pages and writing the bundle metadata.
package crawl

import (
	"context"
	"fmt"
	"sort"

	"github.com/fwojciec/docset"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed at once.
const DefaultConcurrency = 4

// State sizing for the pages of one run.
const (
	// stateFalsePositiveRate is the acceptable false positive rate of the
	// Bloom prefilter; positives are confirmed exactly.
	stateFalsePositiveRate = 0.01
)

// Crawler builds the contents of a docset bundle from a Sphinx site.
type Crawler struct {
	Profile   *docset.Profile
	Fetcher   docset.Fetcher
	Extractor docset.IndexExtractor
	Rewriter  docset.PageRewriter
	Pages     docset.PageWriter
	Index     docset.IndexService
	Info      docset.InfoWriter
	Meta      docset.MetaWriter

	// Optional.
	Titles   docset.TitleExtractor
	Versions docset.VersionDetector
	Detector docset.SiteDetector

	Concurrency int
}

// Result holds the outcome of a run.
type Result struct {
	// Entries is the number of entries extracted from the index page.
	Entries int
	// Inserted is the number of entries that were new to the index.
	Inserted int
	// Pages is the number of pages written, the root page included.
	Pages    int
	Failed   int
	Warnings int
	Bytes    int

	Version string
	Title   string
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressWarning
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
// It is only called from the goroutine running Run.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of mirroring a single page.
type pageResult struct {
	url      string
	bytes    int
	warnings []error
	err      error
}

// Run builds the bundle contents. Failing to fetch, rewrite or write the
// root page, or to fetch or parse the index page, aborts the run with an
// EFATAL error. Any other page that fails is skipped and counted, and the
// entries pointing at it are still indexed.
func (c *Crawler) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	emit := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}
	p := c.Profile
	result := &Result{}

	// Root page: version, title and the bundle's start page.
	rootHTML, err := c.Fetcher.Fetch(ctx, p.RootURL)
	if err != nil {
		return nil, fatal(ctx, err, "fetch root page %s", p.RootURL)
	}
	if c.Detector != nil && !c.Detector.IsSphinx(rootHTML) {
		result.Warnings++
		emit(ProgressEvent{
			Type:  ProgressWarning,
			URL:   p.RootURL,
			Error: docset.Errorf(docset.EINVALID, "%s does not look like a Sphinx site", p.RootURL),
		})
	}
	result.Version = c.detectVersion(rootHTML)
	result.Title = c.detectTitle(rootHTML, func(err error) {
		result.Warnings++
		emit(ProgressEvent{Type: ProgressWarning, URL: p.RootURL, Error: err})
	})

	root := c.processPage(ctx, p.RootURL, rootHTML, p.IndexFilePath())
	for _, w := range root.warnings {
		result.Warnings++
		emit(ProgressEvent{Type: ProgressWarning, URL: root.url, Error: w})
	}
	if root.err != nil {
		return nil, fatal(ctx, root.err, "mirror root page %s", p.RootURL)
	}
	result.Pages++
	result.Bytes += root.bytes

	// Index page: the entries and the set of pages to mirror.
	indexHTML, err := c.Fetcher.Fetch(ctx, p.IndexURL())
	if err != nil {
		return nil, fatal(ctx, err, "fetch index page %s", p.IndexURL())
	}
	entries, err := c.Extractor.Extract(indexHTML)
	if err != nil {
		return nil, fatal(ctx, err, "extract index page %s", p.IndexURL())
	}
	result.Entries = len(entries)

	state := NewState(uint(len(entries))+1, stateFalsePositiveRate)
	state.Schedule(p.IndexFilePath())
	files := PageFiles(entries, state)

	// Mirror pages.
	c.mirror(ctx, files, result, emit)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Index every entry, including those whose page failed.
	inserted, err := c.Index.AddEntries(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("index entries: %w", err)
	}
	result.Inserted = inserted

	// Bundle metadata.
	if err := c.Info.WriteInfo(docset.NewBundleInfo(p, result.Version)); err != nil {
		return nil, fmt.Errorf("write info: %w", err)
	}
	if err := c.Meta.WriteMeta(docset.NewBundleMeta(p, result.Title, result.Version)); err != nil {
		return nil, fmt.Errorf("write meta: %w", err)
	}

	return result, nil
}

// PageFiles returns the distinct page files entries point at, sorted.
// Files already recorded in state are left out.
func PageFiles(entries []*docset.Entry, state docset.CrawlState) []string {
	var files []string
	for _, e := range entries {
		if f := e.File(); f != "" && state.Schedule(f) {
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return files
}

// mirror fetches, rewrites and writes files with a bounded pool of
// workers. Workers never return errors, so one failing page does not
// cancel the others.
func (c *Crawler) mirror(ctx context.Context, files []string, result *Result, emit func(ProgressEvent)) {
	// Set up concurrency
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Channel for collecting results
	resultCh := make(chan pageResult, len(files))
	total := len(files)

	// Notify start
	emit(ProgressEvent{
		Type:  ProgressStarted,
		Total: total,
	})

	// Start workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, path := range files {
			g.Go(func() error {
				resultCh <- c.fetchPage(gctx, path)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed int
	for r := range resultCh {
		completed++

		for _, w := range r.warnings {
			result.Warnings++
			emit(ProgressEvent{
				Type:      ProgressWarning,
				Completed: completed,
				Total:     total,
				URL:       r.url,
				Error:     w,
			})
		}

		if r.err != nil {
			result.Failed++
			emit(ProgressEvent{
				Type:      ProgressFailed,
				Completed: completed,
				Total:     total,
				URL:       r.url,
				Error:     r.err,
			})
			continue
		}

		result.Pages++
		result.Bytes += r.bytes
		emit(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       r.url,
		})
	}

	// Notify finished
	emit(ProgressEvent{
		Type:      ProgressFinished,
		Completed: total,
		Total:     total,
	})
}

// fetchPage fetches the page for a mirror path and processes it.
func (c *Crawler) fetchPage(ctx context.Context, path string) pageResult {
	pageURL := c.Profile.PageURL(path)
	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return pageResult{url: pageURL, err: err}
	}
	return c.processPage(ctx, pageURL, html, path)
}

// processPage rewrites a fetched page and writes it to the mirror.
func (c *Crawler) processPage(ctx context.Context, pageURL, html, path string) pageResult {
	result := pageResult{url: pageURL}

	rewritten, err := c.Rewriter.Rewrite(ctx, &docset.Page{URL: pageURL, HTML: html, Path: path})
	if err != nil {
		result.err = err
		return result
	}
	result.warnings = rewritten.Warnings

	if err := c.Pages.WritePage(ctx, path, rewritten.HTML); err != nil {
		result.err = err
		return result
	}

	result.bytes = len(rewritten.HTML)
	return result
}

func (c *Crawler) detectVersion(html string) string {
	if c.Profile.Version != "" {
		return c.Profile.Version
	}
	if c.Versions != nil {
		if v := c.Versions.DetectVersion(html); v != "" {
			return v
		}
	}
	return c.Profile.DefaultVersion
}

func (c *Crawler) detectTitle(html string, warn func(error)) string {
	if c.Profile.Title != "" {
		return c.Profile.Title
	}
	if c.Titles != nil {
		title, err := c.Titles.ExtractTitle(html)
		if err == nil && title != "" {
			return title
		}
		if err != nil {
			warn(fmt.Errorf("extract title: %w", err))
		}
	}
	return c.Profile.Name
}

// fatal wraps err as an EFATAL error unless ctx was cancelled, in which
// case the context error is returned as is.
func fatal(ctx context.Context, err error, format string, args ...any) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return docset.Errorf(docset.EFATAL, "%s: %v", fmt.Sprintf(format, args...), err)
}
