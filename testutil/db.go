// Package testutil provides shared helpers for integration tests.
// The embedded SQLite driver is pure Go and supports in-memory databases, so
// every test gets its own fully migrated store with no external setup and no
// cleanup SQL.
package testutil

import (
	"context"
	"testing"

	"github.com/d3nnyP/state-game-app/internal/migrate"
	"github.com/d3nnyP/state-game-app/internal/store"
)

// NewStore opens an in-memory store, applies all migrations, and returns it.
// The store is closed automatically when the test (and all its subtests)
// finish. Each call returns an isolated database.
func NewStore(t *testing.T) *store.Store {
	t.Helper()

	s := store.New(":memory:")
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("testutil.NewStore: open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := migrate.New(s).Apply(context.Background()); err != nil {
		t.Fatalf("testutil.NewStore: migrate: %v", err)
	}
	return s
}

// NewBareStore opens an in-memory store without applying migrations.
// Use this when the test drives the migrator itself.
func NewBareStore(t *testing.T) *store.Store {
	t.Helper()

	s := store.New(":memory:")
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("testutil.NewBareStore: open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
