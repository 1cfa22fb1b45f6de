package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/docset"
	"github.com/fwojciec/docset/mock"
	dsslog "github.com/fwojciec/docset/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	newFetcher := func(buf *bytes.Buffer, bodies map[string]string) *dsslog.LoggingFetcher {
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				body, ok := bodies[url]
				if !ok {
					return "", docset.Errorf(docset.EUNAVAILABLE, "HTTP 404 for %s", url)
				}
				return body, nil
			},
		}
		return dsslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(buf, nil)))
	}

	t.Run("logs resource size byte for byte", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		png := "\x89PNG\r\n\x1a\n"
		f := newFetcher(&buf, map[string]string{
			"https://docs.test/_static/logo.png": png,
		})

		body, err := f.Fetch(context.Background(), "https://docs.test/_static/logo.png")

		require.NoError(t, err)
		assert.Equal(t, png, body)
		out := buf.String()
		assert.Contains(t, out, "msg=fetch")
		assert.Contains(t, out, "url=https://docs.test/_static/logo.png")
		assert.Contains(t, out, "bytes=8")
		assert.Contains(t, out, "err=<nil>")
	})

	t.Run("logs unavailable pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		f := newFetcher(&buf, nil)

		_, err := f.Fetch(context.Background(), "https://docs.test/api/missing.html")

		require.Error(t, err)
		assert.Equal(t, docset.EUNAVAILABLE, docset.ErrorCode(err))
		assert.Contains(t, buf.String(), "bytes=0")
		assert.Contains(t, buf.String(), "HTTP 404 for https://docs.test/api/missing.html")
	})

	t.Run("close reaches the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		var closed int
		inner := &mock.Fetcher{CloseFn: func() error { closed++; return nil }}
		f := dsslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

		require.NoError(t, f.Close())
		assert.Equal(t, 1, closed)
	})
}
