package mock

import (
	"context"

	"github.com/fwojciec/docset"
)

var _ docset.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of docset.IndexService.
type IndexService struct {
	AddEntryFn     func(ctx context.Context, e *docset.Entry) (bool, error)
	AddEntriesFn   func(ctx context.Context, entries []*docset.Entry) (int, error)
	FindEntriesFn  func(ctx context.Context, filter docset.EntryFilter) ([]*docset.Entry, error)
	CountEntriesFn func(ctx context.Context) (int, error)
}

func (s *IndexService) AddEntry(ctx context.Context, e *docset.Entry) (bool, error) {
	return s.AddEntryFn(ctx, e)
}

func (s *IndexService) AddEntries(ctx context.Context, entries []*docset.Entry) (int, error) {
	return s.AddEntriesFn(ctx, entries)
}

func (s *IndexService) FindEntries(ctx context.Context, filter docset.EntryFilter) ([]*docset.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *IndexService) CountEntries(ctx context.Context) (int, error) {
	return s.CountEntriesFn(ctx)
}
