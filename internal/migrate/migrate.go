// Package migrate versions the embedded store's schema.
//
// Migrations are a hardcoded ordered list applied exactly once per version,
// tracked in the migrations ledger table. Apply is idempotent: versions
// already recorded in the ledger are skipped on subsequent calls. A failing
// migration aborts without being marked applied, so Apply can be retried;
// migrations applied before the failure stay applied.
package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/d3nnyP/state-game-app/internal/store"
)

// Migration is one schema step. Down is optional; Rollback fails on a
// migration that lacks one.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Migrator applies and rolls back the hardcoded migration list against one
// store. Construct with New.
type Migrator struct {
	store      *store.Store
	migrations []Migration
}

// New returns a Migrator for the built-in migration list.
func New(s *store.Store) *Migrator {
	return &Migrator{store: s, migrations: all}
}

// newWithMigrations is the test seam for exercising the runner against a
// custom list without touching the shipped schema.
func newWithMigrations(s *store.Store, migrations []Migration) *Migrator {
	return &Migrator{store: s, migrations: migrations}
}

// EnsureLedger creates the migrations ledger table if absent. Idempotent.
func (m *Migrator) EnsureLedger(ctx context.Context) error {
	_, err := m.store.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			executed_at TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate.Migrator.EnsureLedger: %w", err)
	}
	return nil
}

// CurrentVersion returns the highest version recorded in the ledger, or 0
// when no migration has been applied.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	row, err := m.store.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM migrations`)
	if err != nil {
		return 0, fmt.Errorf("migrate.Migrator.CurrentVersion: %w", err)
	}
	var v int
	if err := row.Scan(&v); err != nil {
		return 0, fmt.Errorf("migrate.Migrator.CurrentVersion: %w", err)
	}
	return v, nil
}

// Apply runs all pending migrations — those with version above the current
// ledger version — in ascending order. Each migration's DDL and its ledger
// row are written in one transaction, so a failure leaves that version
// unapplied and unrecorded.
//
// Apply failing must abort application startup: schema correctness is a
// precondition for every repository call.
func (m *Migrator) Apply(ctx context.Context) error {
	if err := m.EnsureLedger(ctx); err != nil {
		return fmt.Errorf("migrate.Migrator.Apply: %w", err)
	}

	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("migrate.Migrator.Apply: %w", err)
	}

	pending := make([]Migration, 0, len(m.migrations))
	for _, mig := range m.migrations {
		if mig.Version > current {
			pending = append(pending, mig)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, mig := range pending {
		stmts := []store.Statement{
			{SQL: mig.Up},
			{
				SQL:  `INSERT INTO migrations (version, name, executed_at) VALUES (?, ?, ?)`,
				Args: []any{mig.Version, mig.Name, time.Now().UTC().Format(time.RFC3339)},
			},
		}
		if err := m.store.RunAtomic(ctx, stmts); err != nil {
			return fmt.Errorf("migrate.Migrator.Apply: version %d (%s): %w", mig.Version, mig.Name, err)
		}
		slog.Info("migration applied", "version", mig.Version, "name", mig.Name)
	}

	if len(pending) == 0 {
		slog.Debug("schema is up to date", "version", current)
	}
	return nil
}

// Rollback reverts migrations strictly above targetVersion, in descending
// order, running each Down statement and deleting its ledger row in one
// transaction. A migration without a Down statement is a hard error.
func (m *Migrator) Rollback(ctx context.Context, targetVersion int) error {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("migrate.Migrator.Rollback: %w", err)
	}

	applied := make([]Migration, 0, len(m.migrations))
	for _, mig := range m.migrations {
		if mig.Version > targetVersion && mig.Version <= current {
			applied = append(applied, mig)
		}
	}
	sort.Slice(applied, func(i, j int) bool { return applied[i].Version > applied[j].Version })

	for _, mig := range applied {
		if mig.Down == "" {
			return fmt.Errorf("migrate.Migrator.Rollback: version %d (%s) has no down statement", mig.Version, mig.Name)
		}
		stmts := []store.Statement{
			{SQL: mig.Down},
			{SQL: `DELETE FROM migrations WHERE version = ?`, Args: []any{mig.Version}},
		}
		if err := m.store.RunAtomic(ctx, stmts); err != nil {
			return fmt.Errorf("migrate.Migrator.Rollback: version %d (%s): %w", mig.Version, mig.Name, err)
		}
		slog.Info("migration rolled back", "version", mig.Version, "name", mig.Name)
	}
	return nil
}
