package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docset"
)

var _ docset.IndexService = (*LoggingIndexService)(nil)

// LoggingIndexService wraps an IndexService with logging of writes.
type LoggingIndexService struct {
	next   docset.IndexService
	logger *slog.Logger
}

// NewLoggingIndexService creates a new LoggingIndexService.
func NewLoggingIndexService(next docset.IndexService, logger *slog.Logger) *LoggingIndexService {
	return &LoggingIndexService{next: next, logger: logger}
}

func (s *LoggingIndexService) AddEntry(ctx context.Context, e *docset.Entry) (inserted bool, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("index add",
			"name", e.Name,
			"type", e.Type,
			"path", e.Path,
			"inserted", inserted,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AddEntry(ctx, e)
}

func (s *LoggingIndexService) AddEntries(ctx context.Context, entries []*docset.Entry) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("index add batch",
			"entries", len(entries),
			"inserted", n,
			"duplicates", len(entries)-n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AddEntries(ctx, entries)
}

func (s *LoggingIndexService) FindEntries(ctx context.Context, filter docset.EntryFilter) ([]*docset.Entry, error) {
	return s.next.FindEntries(ctx, filter)
}

func (s *LoggingIndexService) CountEntries(ctx context.Context) (int, error) {
	return s.next.CountEntries(ctx)
}
