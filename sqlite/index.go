package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fwojciec/docset"
)

// Compile-time interface verification.
var _ docset.IndexService = (*IndexService)(nil)

// IndexService implements docset.IndexService using SQLite.
type IndexService struct {
	db *DB
}

// NewIndexService creates a new IndexService.
func NewIndexService(db *DB) *IndexService {
	return &IndexService{db: db}
}

// AddEntry inserts e into both index tables, ignoring duplicates.
func (s *IndexService) AddEntry(ctx context.Context, e *docset.Entry) (bool, error) {
	n, err := s.AddEntries(ctx, []*docset.Entry{e})
	return n == 1, err
}

// AddEntries inserts all entries in one transaction. Entries whose
// (name, type, path) triple is already present are skipped.
func (s *IndexService) AddEntries(ctx context.Context, entries []*docset.Entry) (int, error) {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted, err := insertEntries(ctx, tx, entries)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func insertEntries(ctx context.Context, tx *sql.Tx, entries []*docset.Entry) (int, error) {
	searchStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO searchIndex (name, type, path) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer searchStmt.Close()

	tokenStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO ztoken (zname, ztype, zpath) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer tokenStmt.Close()

	var inserted int
	for _, e := range entries {
		res, err := searchStmt.ExecContext(ctx, e.Name, string(e.Type), e.Path)
		if err != nil {
			return 0, err
		}
		if _, err := tokenStmt.ExecContext(ctx, e.Name, string(e.Type), e.Path); err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}
	return inserted, nil
}

// FindEntries retrieves entries matching the filter, ordered by name.
func (s *IndexService) FindEntries(ctx context.Context, filter docset.EntryFilter) ([]*docset.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT name, type, path FROM searchIndex WHERE 1=1")

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.Path != nil {
		query.WriteString(" AND path = ?")
		args = append(args, *filter.Path)
	}

	query.WriteString(" ORDER BY name ASC, id ASC")
	appendLimit(&query, &args, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*docset.Entry
	for rows.Next() {
		var e docset.Entry
		var typ string
		if err := rows.Scan(&e.Name, &typ, &e.Path); err != nil {
			return nil, err
		}
		e.Type = docset.EntryType(typ)
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// CountEntries returns the number of rows in searchIndex.
func (s *IndexService) CountEntries(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM searchIndex").Scan(&n)
	return n, err
}
