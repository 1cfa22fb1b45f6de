package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docset"
	"github.com/fwojciec/docset/mock"
	dsslog "github.com/fwojciec/docset/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingIndexService_AddEntry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.IndexService{
		AddEntryFn: func(ctx context.Context, e *docset.Entry) (bool, error) {
			return false, nil
		},
	}

	svc := dsslog.NewLoggingIndexService(inner, logger)
	ok, err := svc.AddEntry(context.Background(), &docset.Entry{Name: "Tag", Type: docset.EntryClass, Path: "api/bs4.html#bs4.Tag"})

	require.NoError(t, err)
	assert.False(t, ok)
	output := buf.String()
	assert.Contains(t, output, "index add")
	assert.Contains(t, output, "name=Tag")
	assert.Contains(t, output, "type=Class")
	assert.Contains(t, output, "inserted=false")
}

func TestLoggingIndexService_AddEntries(t *testing.T) {
	t.Parallel()

	t.Run("logs counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.IndexService{
			AddEntriesFn: func(ctx context.Context, entries []*docset.Entry) (int, error) {
				return 2, nil
			},
		}

		svc := dsslog.NewLoggingIndexService(inner, logger)
		n, err := svc.AddEntries(context.Background(), make([]*docset.Entry, 3))

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		output := buf.String()
		assert.Contains(t, output, "entries=3")
		assert.Contains(t, output, "inserted=2")
		assert.Contains(t, output, "duplicates=1")
	})

	t.Run("logs error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.IndexService{
			AddEntriesFn: func(ctx context.Context, entries []*docset.Entry) (int, error) {
				return 0, errors.New("disk full")
			},
		}

		_, err := dsslog.NewLoggingIndexService(inner, logger).AddEntries(context.Background(), nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="disk full"`)
	})
}

func TestLoggingIndexService_Delegates(t *testing.T) {
	t.Parallel()

	inner := &mock.IndexService{
		CountEntriesFn: func(ctx context.Context) (int, error) { return 7, nil },
		FindEntriesFn: func(ctx context.Context, filter docset.EntryFilter) ([]*docset.Entry, error) {
			return []*docset.Entry{{Name: "x"}}, nil
		},
	}
	svc := dsslog.NewLoggingIndexService(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	n, err := svc.CountEntries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	entries, err := svc.FindEntries(context.Background(), docset.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
