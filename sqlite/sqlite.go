// Package sqlite provides the SQLite-backed symbol index of a docset bundle.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and recreates the index schema.
// Any index tables already present in the file are dropped, so every run
// starts from an empty index.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set busy timeout to wait 5 seconds before failing on lock contention.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// The index ships inside the bundle as a single file, so keep the
	// default rollback journal rather than WAL and its side files.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = DELETE"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to set journal mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema drops and recreates the index tables.
// searchIndex is what Dash reads; ztoken mirrors it for viewers that
// expect the Core Data style table.
func (db *DB) createSchema() error {
	schema := `
		DROP TABLE IF EXISTS searchIndex;
		DROP TABLE IF EXISTS ztoken;

		CREATE TABLE searchIndex (
			id INTEGER PRIMARY KEY,
			name TEXT,
			type TEXT,
			path TEXT
		);
		CREATE UNIQUE INDEX anchor ON searchIndex (name, type, path);

		CREATE TABLE ztoken (
			zid INTEGER PRIMARY KEY,
			zname TEXT,
			ztype TEXT,
			zpath TEXT
		);
		CREATE UNIQUE INDEX zanchor ON ztoken (zname, ztype, zpath);
	`

	_, err := db.db.Exec(schema)
	return err
}
