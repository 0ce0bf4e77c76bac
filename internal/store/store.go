// Package store owns the single connection to the on-device SQLite file.
// All repositories execute statements through one Store instance; the Store
// serializes execution on a single connection, which together with SQLite's
// file-level locking gives the single-writer model the rest of the core
// assumes. No other package opens its own connection.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // registers the pure-Go "sqlite" driver

	"github.com/d3nnyP/state-game-app/internal/domain"
)

// Statement is one parameterized SQL statement, used by RunAtomic to execute
// a sequence as a single transaction.
type Statement struct {
	SQL  string
	Args []any
}

// Store wraps the embedded database file. Construct with New, then call Open
// before any repository use. The zero value is not usable.
type Store struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// New returns an unopened Store for the database file at path.
// Use ":memory:" for an in-memory database (tests).
func New(path string) *Store {
	return &Store{path: path}
}

// Open opens the database file, creating it if absent. Calling Open on an
// already-open store is a no-op.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("store.Open: %w: %v", domain.ErrStoreUnavailable, err)
	}

	// The single connection is the serialization point for all statements;
	// sql.DB must not open a second one behind our back.
	db.SetMaxOpenConns(1)

	// Foreign keys are off by default in SQLite and must be enabled per
	// connection for the observations cascade to hold.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("store.Open: enable foreign keys: %w: %v", domain.ErrStoreUnavailable, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("store.Open: %w: %v", domain.ErrStoreUnavailable, err)
	}

	s.db = db
	return nil
}

// Close releases the connection. After Close, every statement method fails
// with domain.ErrStoreUnavailable until Open is called again.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("store.Close: %w", err)
	}
	return nil
}

// IsReady reports whether the store is open and usable.
func (s *Store) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db != nil
}

// Exec runs one parameterized statement that returns no rows.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	db, err := s.handle()
	if err != nil {
		return nil, fmt.Errorf("store.Exec: %w", err)
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store.Exec: %w: %v", domain.ErrQuery, err)
	}
	return res, nil
}

// Query runs one parameterized statement and returns its rows.
// The caller must close the returned rows.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	db, err := s.handle()
	if err != nil {
		return nil, fmt.Errorf("store.Query: %w", err)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store.Query: %w: %v", domain.ErrQuery, err)
	}
	return rows, nil
}

// QueryRow runs one parameterized statement expected to return at most one
// row. Unlike database/sql, it returns an error eagerly when the store is not
// open, since *sql.Row cannot carry that condition.
func (s *Store) QueryRow(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	db, err := s.handle()
	if err != nil {
		return nil, fmt.Errorf("store.QueryRow: %w", err)
	}
	return db.QueryRowContext(ctx, query, args...), nil
}

// RunAtomic executes the statements as one all-or-nothing transaction.
// Any failure rolls back every statement in the sequence.
func (s *Store) RunAtomic(ctx context.Context, stmts []Statement) error {
	db, err := s.handle()
	if err != nil {
		return fmt.Errorf("store.RunAtomic: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store.RunAtomic: begin: %w: %v", domain.ErrQuery, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, st := range stmts {
		if _, err := tx.ExecContext(ctx, st.SQL, st.Args...); err != nil {
			return fmt.Errorf("store.RunAtomic: %w: %v", domain.ErrQuery, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store.RunAtomic: commit: %w: %v", domain.ErrQuery, err)
	}
	return nil
}

// handle returns the open *sql.DB or ErrStoreUnavailable.
func (s *Store) handle() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.db, nil
}
