package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/docset/crawl"
	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while a bundle is built.
type Reporter interface {
	Report(event crawl.ProgressEvent)
	Finish()
}

// BarReporter draws a progress bar and prints one line per skipped page.
type BarReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewBarReporter returns a BarReporter writing to w.
func NewBarReporter(w io.Writer) *BarReporter {
	return &BarReporter{w: w}
}

func (r *BarReporter) Report(e crawl.ProgressEvent) {
	switch e.Type {
	case crawl.ProgressStarted:
		r.bar = progressbar.NewOptions(e.Total,
			progressbar.OptionSetWriter(r.w),
			progressbar.OptionSetDescription("Mirroring pages"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	case crawl.ProgressCompleted:
		r.set(e.Completed, crawl.TruncateURL(e.URL, 40))
	case crawl.ProgressFailed:
		r.println("skip %s: %v", e.URL, e.Error)
		r.set(e.Completed, crawl.TruncateURL(e.URL, 40))
	case crawl.ProgressWarning:
		r.println("warn %s: %v", e.URL, e.Error)
	case crawl.ProgressFinished:
		r.Finish()
	}
}

// Finish clears the bar. It is safe to call more than once.
func (r *BarReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}

func (r *BarReporter) set(n int, desc string) {
	if r.bar != nil {
		r.bar.Describe(desc)
		_ = r.bar.Set(n)
	}
}

// println prints a line above the bar.
func (r *BarReporter) println(format string, args ...any) {
	if r.bar != nil {
		_ = r.bar.Clear()
	}
	fmt.Fprintf(r.w, format+"\n", args...)
}

// LogReporter records progress events with a structured logger.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter returns a LogReporter.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Report(e crawl.ProgressEvent) {
	switch e.Type {
	case crawl.ProgressStarted:
		r.logger.Info("mirror started", "pages", e.Total)
	case crawl.ProgressCompleted:
		r.logger.Info("page mirrored", "url", e.URL, "completed", e.Completed, "total", e.Total)
	case crawl.ProgressFailed:
		r.logger.Warn("page skipped", "url", e.URL, "err", e.Error)
	case crawl.ProgressWarning:
		r.logger.Warn("page warning", "url", e.URL, "err", e.Error)
	case crawl.ProgressFinished:
		r.logger.Info("mirror finished", "pages", e.Total)
	}
}

func (r *LogReporter) Finish() {}
