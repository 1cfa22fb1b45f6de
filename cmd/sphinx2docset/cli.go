package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/docset"
	"github.com/fwojciec/docset/bigcache"
	"github.com/fwojciec/docset/crawl"
	"github.com/fwojciec/docset/etree"
	"github.com/fwojciec/docset/fs"
	"github.com/fwojciec/docset/goquery"
	dshttp "github.com/fwojciec/docset/http"
	"github.com/fwojciec/docset/inline"
	"github.com/fwojciec/docset/koanf"
	"github.com/fwojciec/docset/readability"
	"github.com/fwojciec/docset/rod"
	dsslog "github.com/fwojciec/docset/slog"
	"github.com/fwojciec/docset/sqlite"
	"github.com/fwojciec/docset/trafilatura"
	"github.com/google/uuid"
)

const defaultEnvPrefix = koanf.DefaultEnvPrefix

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config         string        `short:"C" help:"Site profile YAML file" type:"path"`
	RootURL        string        `name:"root-url" help:"Root URL of the documentation site (overrides the profile)"`
	Output         string        `short:"o" default:"." help:"Directory the bundle is written to" type:"path"`
	Name           string        `help:"Bundle directory name (default: profile name with spaces as underscores + .docset)"`
	Icons          string        `default:"assets" help:"Directory holding icon.png and icon@2x.png" type:"path"`
	Concurrency    int           `short:"c" default:"4" help:"Concurrent page fetches"`
	Timeout        time.Duration `short:"t" default:"30s" help:"Per-request timeout"`
	Rate           float64       `default:"0" help:"Requests per second per domain (0 = unlimited)"`
	Retries        int           `default:"0" help:"Retries per failed request"`
	CacheMB        int           `name:"cache-mb" default:"256" help:"Size cap in megabytes of the shared stylesheet and script cache (0 = unbounded)"`
	Render         bool          `help:"Render pages in headless Chrome before rewriting"`
	BrowserPages   int           `name:"browser-pages" default:"75" help:"Pages rendered before Chrome is relaunched (0 = never)"`
	UserAgent      string        `name:"user-agent" default:"${user_agent}" help:"User-Agent header sent to the documentation host"`
	TitleExtractor string        `name:"title-extractor" enum:"trafilatura,readability" default:"trafilatura" help:"Title extractor (trafilatura, readability)"`
	Archive        bool          `help:"Also write <name>.tgz next to the bundle"`
	Verbose        bool          `short:"v" help:"Log every request and index write"`
}

// Run builds the bundle described by the flags.
func (c *CLI) Run(ctx context.Context, envPrefix string, stdout, stderr io.Writer) error {
	start := time.Now()

	profile, err := koanf.LoadProfile(c.Config, envPrefix)
	if err != nil {
		return err
	}
	if c.RootURL != "" {
		profile.RootURL = c.RootURL
		if err := profile.Validate(); err != nil {
			return err
		}
	}
	if c.Concurrency <= 0 {
		return docset.Errorf(docset.EINVALID, "concurrency must be positive")
	}
	if c.Retries < 0 {
		return docset.Errorf(docset.EINVALID, "retries must not be negative")
	}
	if c.CacheMB < 0 {
		return docset.Errorf(docset.EINVALID, "cache size must not be negative")
	}
	name := c.Name
	if name == "" {
		name = profile.BundleName()
	}

	var logger *slog.Logger
	if c.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil)).With("run", uuid.NewString())
	}

	// Resources and images always go over HTTP.
	var fetcher docset.Fetcher = dshttp.NewFetcher(dshttp.WithTimeout(c.Timeout), dshttp.WithUserAgent(c.UserAgent))
	fetcher = c.decorate(fetcher, logger)

	resources, err := bigcache.NewCachingFetcher(ctx, fetcher, bigcache.WithMaxSizeMB(c.CacheMB))
	if err != nil {
		return err
	}
	defer resources.Close()

	pages := fetcher
	if c.Render {
		browser, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout), rod.WithMaxPages(c.BrowserPages))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return docset.Errorf(docset.EUNAVAILABLE, "failed to start browser: %v", err)
		}
		if logger != nil {
			logger.Info("browser started", "pid", browser.LauncherPID())
		}
		pages = c.decorate(browser, logger)
		defer pages.Close()
	}

	bundle := fs.NewBundle(c.Output, name, profile.DocumentsDir)
	if err := bundle.Create(); err != nil {
		return fmt.Errorf("create bundle: %w", err)
	}

	result, err := c.build(ctx, profile, bundle, pages, fetcher, resources, logger, stderr)
	if err != nil {
		_ = bundle.Abort()
		return err
	}

	if err := bundle.Commit(); err != nil {
		_ = bundle.Abort()
		return fmt.Errorf("commit bundle: %w", err)
	}

	if c.Archive {
		dest := filepath.Join(c.Output, name+".tgz")
		if err := fs.Archive(ctx, bundle.FinalDir(), dest); err != nil {
			return fmt.Errorf("archive bundle: %w", err)
		}
	}

	fmt.Fprintln(stdout, crawl.FormatSummary(result, time.Since(start)))
	fmt.Fprintf(stdout, "Bundle: %s\n", bundle.FinalDir())
	return nil
}

// build runs the crawl into the temporary bundle directory.
func (c *CLI) build(
	ctx context.Context,
	profile *docset.Profile,
	bundle *fs.Bundle,
	pages, assets docset.Fetcher,
	resources *bigcache.CachingFetcher,
	logger *slog.Logger,
	stderr io.Writer,
) (*crawl.Result, error) {
	db := sqlite.NewDB(bundle.IndexPath())
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	var index docset.IndexService = sqlite.NewIndexService(db)
	var localizer docset.AssetLocalizer = fs.NewAssetLocalizer(assets, bundle.DocumentsDir())
	if logger != nil {
		index = dsslog.NewLoggingIndexService(index, logger)
		localizer = dsslog.NewLoggingAssetLocalizer(localizer, logger)
	}

	versions, err := goquery.NewVersionDetector(profile)
	if err != nil {
		db.Close()
		return nil, err
	}

	crawler := &crawl.Crawler{
		Profile:     profile,
		Fetcher:     pages,
		Extractor:   goquery.NewIndexExtractor(profile),
		Rewriter:    goquery.NewRewriter(inline.NewInliner(resources, profile.StaticURL("")), localizer),
		Pages:       fs.NewMirrorWriter(bundle.DocumentsDir()),
		Index:       index,
		Info:        etree.NewInfoWriter(bundle.InfoPath()),
		Meta:        bundle,
		Titles:      c.titleExtractor(),
		Versions:    versions,
		Detector:    goquery.NewDetector(),
		Concurrency: c.Concurrency,
	}

	var reporter Reporter
	if logger != nil {
		reporter = NewLogReporter(logger)
	} else {
		reporter = NewBarReporter(stderr)
	}

	result, err := crawler.Run(ctx, reporter.Report)
	reporter.Finish()
	if logger != nil {
		logger.Info("resource cache", "entries", resources.Len())
	}
	if err != nil {
		db.Close()
		return nil, err
	}

	// The index file must be complete before the bundle is renamed.
	if err := db.Close(); err != nil {
		return nil, fmt.Errorf("close index: %w", err)
	}

	if _, err := bundle.CopyIcons(c.Icons); err != nil {
		return nil, fmt.Errorf("copy icons: %w", err)
	}

	return result, nil
}

// decorate wraps f with the rate limit, retry and logging layers the flags
// ask for.
func (c *CLI) decorate(f docset.Fetcher, logger *slog.Logger) docset.Fetcher {
	if c.Rate > 0 {
		f = crawl.NewLimitedFetcher(f, crawl.NewDomainLimiter(c.Rate))
	}
	if c.Retries > 0 {
		var logf crawl.LogFunc
		if logger != nil {
			logf = func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			}
		}
		f = crawl.NewRetryingFetcher(f, crawl.RetryDelays(c.Retries), logf)
	}
	if logger != nil {
		f = dsslog.NewLoggingFetcher(f, logger)
	}
	return f
}

func (c *CLI) titleExtractor() docset.TitleExtractor {
	if c.TitleExtractor == "readability" {
		return readability.NewExtractor()
	}
	return trafilatura.NewExtractor()
}

