// Package database adapts relational and document databases to storage.Port.
// Every backend keeps one row or document per storage key holding the
// collection's JSON.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"property-storefront/internal/storage"
)

// Dialect captures the SQL differences between supported engines.
type Dialect struct {
	Name   string
	Driver string
	// Placeholder returns the bind marker for the n-th (1-based) argument.
	Placeholder func(n int) string
}

var (
	// Postgres uses lib/pq.
	Postgres = Dialect{
		Name:        "postgres",
		Driver:      "postgres",
		Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
	// SQLite uses modernc.org/sqlite.
	SQLite = Dialect{
		Name:        "sqlite",
		Driver:      "sqlite",
		Placeholder: func(int) string { return "?" },
	}
)

const entriesTable = "store_entries"

// SQLPort stores documents in the store_entries table.
type SQLPort struct {
	db      *sql.DB
	dialect Dialect

	selectQuery string
	upsertQuery string
	deleteQuery string
}

// NewSQLPort wraps db and creates the entries table if needed.
func NewSQLPort(ctx context.Context, db *sql.DB, dialect Dialect) (*SQLPort, error) {
	p := func(n int) string { return dialect.Placeholder(n) }
	port := &SQLPort{
		db:          db,
		dialect:     dialect,
		selectQuery: fmt.Sprintf("SELECT value FROM %s WHERE entry_key = %s", entriesTable, p(1)),
		upsertQuery: fmt.Sprintf(`INSERT INTO %s (entry_key, value, updated_at) VALUES (%s, %s, %s)
	ON CONFLICT (entry_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			entriesTable, p(1), p(2), p(3)),
		deleteQuery: fmt.Sprintf("DELETE FROM %s WHERE entry_key = %s", entriesTable, p(1)),
	}
	if err := port.InitSchema(ctx); err != nil {
		return nil, err
	}
	return port, nil
}

// InitSchema creates the entries table if it doesn't exist
func (s *SQLPort) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		entry_key VARCHAR(191) PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at BIGINT NOT NULL
	)`, entriesTable)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create %s table: %w", s.dialect.Name, err)
	}
	return nil
}

// Read returns the document stored under key.
func (s *SQLPort) Read(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.selectQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s read %s: %w", s.dialect.Name, key, err)
	}
	return []byte(value), nil
}

// Write upserts the document under key.
func (s *SQLPort) Write(ctx context.Context, key string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, s.upsertQuery, key, string(data), time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("%s write %s: %w", s.dialect.Name, key, err)
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *SQLPort) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.deleteQuery, key); err != nil {
		return fmt.Errorf("%s delete %s: %w", s.dialect.Name, key, err)
	}
	return nil
}

// Close closes the underlying handle.
func (s *SQLPort) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OpenPostgres connects with lib/pq.
func OpenPostgres(ctx context.Context, dsn string) (*SQLPort, error) {
	return openSQL(ctx, Postgres, dsn)
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLPort, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	port, err := openSQL(ctx, SQLite, path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	// one writer at a time; sqlite serializes anyway
	port.db.SetMaxOpenConns(1)
	return port, nil
}

func openSQL(ctx context.Context, dialect Dialect, dsn string) (*SQLPort, error) {
	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.Name, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect.Name, err)
	}
	port, err := NewSQLPort(ctx, db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return port, nil
}
