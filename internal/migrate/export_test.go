package migrate

import "github.com/d3nnyP/state-game-app/internal/store"

// NewWithMigrations exposes the custom-list constructor to external tests.
func NewWithMigrations(s *store.Store, migrations []Migration) *Migrator {
	return newWithMigrations(s, migrations)
}
