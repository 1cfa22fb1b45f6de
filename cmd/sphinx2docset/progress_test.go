package main_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	main "github.com/fwojciec/docset/cmd/sphinx2docset"
	"github.com/fwojciec/docset/crawl"
	"github.com/stretchr/testify/assert"
)

func TestBarReporter(t *testing.T) {
	t.Parallel()

	t.Run("prints skipped pages and warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := main.NewBarReporter(&buf)

		r.Report(crawl.ProgressEvent{Type: crawl.ProgressWarning, URL: "https://a.test/", Error: errors.New("not sphinx")})
		r.Report(crawl.ProgressEvent{Type: crawl.ProgressStarted, Total: 2})
		r.Report(crawl.ProgressEvent{Type: crawl.ProgressCompleted, Completed: 1, Total: 2, URL: "https://a.test/api/a.html"})
		r.Report(crawl.ProgressEvent{Type: crawl.ProgressFailed, Completed: 2, Total: 2, URL: "https://a.test/api/b.html", Error: errors.New("HTTP 500")})
		r.Report(crawl.ProgressEvent{Type: crawl.ProgressFinished, Completed: 2, Total: 2})

		out := buf.String()
		assert.Contains(t, out, "warn https://a.test/: not sphinx\n")
		assert.Contains(t, out, "skip https://a.test/api/b.html: HTTP 500\n")
	})

	t.Run("finish without start is a no-op", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := main.NewBarReporter(&buf)

		r.Finish()
		r.Finish()

		assert.Empty(t, buf.String())
	})
}

func TestLogReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := main.NewLogReporter(slog.New(slog.NewTextHandler(&buf, nil)))

	r.Report(crawl.ProgressEvent{Type: crawl.ProgressStarted, Total: 1})
	r.Report(crawl.ProgressEvent{Type: crawl.ProgressFailed, Completed: 1, Total: 1, URL: "https://a.test/x.html", Error: errors.New("timeout")})
	r.Report(crawl.ProgressEvent{Type: crawl.ProgressFinished, Completed: 1, Total: 1})
	r.Finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "level=WARN")
	assert.Contains(t, lines[1], "url=https://a.test/x.html")
	assert.Contains(t, lines[1], "err=timeout")
}
