package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docset/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates both index tables", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()

		var n int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM searchIndex").Scan(&n)
		require.NoError(t, err)

		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ztoken").Scan(&n)
		require.NoError(t, err)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/docSet.dsidx")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("keeps rollback journal for file databases", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "docSet.dsidx")
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		var journalMode string
		err = db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		assert.Equal(t, "delete", journalMode)
	})

	t.Run("reopening starts from an empty index", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		dbPath := filepath.Join(t.TempDir(), "docSet.dsidx")

		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(ctx, "INSERT INTO searchIndex (name, type, path) VALUES ('a', 'Class', 'a.html')")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db = sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		var n int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM searchIndex").Scan(&n)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
