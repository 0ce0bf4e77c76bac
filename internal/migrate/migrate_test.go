package migrate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d3nnyP/state-game-app/internal/migrate"
	"github.com/d3nnyP/state-game-app/internal/store"
	"github.com/d3nnyP/state-game-app/testutil"
)

// tableExists checks sqlite_master for the named table.
func tableExists(t *testing.T, s *store.Store, name string) bool {
	t.Helper()
	row, err := s.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name)
	require.NoError(t, err)
	var count int
	require.NoError(t, row.Scan(&count))
	return count > 0
}

// ledgerRows returns the number of rows in the migrations ledger.
func ledgerRows(t *testing.T, s *store.Store) int {
	t.Helper()
	row, err := s.QueryRow(context.Background(), `SELECT COUNT(*) FROM migrations`)
	require.NoError(t, err)
	var count int
	require.NoError(t, row.Scan(&count))
	return count
}

func TestMigrator_Apply_CreatesSchema(t *testing.T) {
	s := testutil.NewBareStore(t)
	m := migrate.New(s)

	require.NoError(t, m.Apply(context.Background()))

	assert.True(t, tableExists(t, s, "trips"))
	assert.True(t, tableExists(t, s, "observations"))
	assert.True(t, tableExists(t, s, "migrations"))
}

// TestMigrator_Apply_Idempotent verifies that a second Apply finds zero
// pending migrations: same schema, no duplicate ledger rows.
func TestMigrator_Apply_Idempotent(t *testing.T) {
	s := testutil.NewBareStore(t)
	m := migrate.New(s)
	ctx := context.Background()

	require.NoError(t, m.Apply(ctx))
	rowsAfterFirst := ledgerRows(t, s)

	require.NoError(t, m.Apply(ctx))

	assert.Equal(t, rowsAfterFirst, ledgerRows(t, s))
}

func TestMigrator_CurrentVersion(t *testing.T) {
	s := testutil.NewBareStore(t)
	m := migrate.New(s)
	ctx := context.Background()

	require.NoError(t, m.EnsureLedger(ctx))
	v, err := m.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Zero(t, v, "empty ledger should report version 0")

	require.NoError(t, m.Apply(ctx))
	v, err = m.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

// TestMigrator_Apply_FailureLeavesVersionUnrecorded verifies that a failing
// migration is not marked applied, so Apply can be retried after a fix, and
// that migrations before the failure stay applied.
func TestMigrator_Apply_FailureLeavesVersionUnrecorded(t *testing.T) {
	s := testutil.NewBareStore(t)
	ctx := context.Background()

	m := migrate.NewWithMigrations(s, []migrate.Migration{
		{Version: 1, Name: "good", Up: `CREATE TABLE good (v TEXT)`, Down: `DROP TABLE good`},
		{Version: 2, Name: "broken", Up: `CREATE BROKEN SYNTAX`},
	})

	err := m.Apply(ctx)
	require.Error(t, err)

	v, verr := m.CurrentVersion(ctx)
	require.NoError(t, verr)
	assert.Equal(t, 1, v, "version 1 applied, version 2 unrecorded")
	assert.True(t, tableExists(t, s, "good"))
}

func TestMigrator_Rollback(t *testing.T) {
	s := testutil.NewBareStore(t)
	m := migrate.New(s)
	ctx := context.Background()

	require.NoError(t, m.Apply(ctx))
	require.NoError(t, m.Rollback(ctx, 1))

	v, err := m.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.True(t, tableExists(t, s, "trips"))
	assert.False(t, tableExists(t, s, "observations"))
}

func TestMigrator_Rollback_MissingDownIsFatal(t *testing.T) {
	s := testutil.NewBareStore(t)
	ctx := context.Background()

	m := migrate.NewWithMigrations(s, []migrate.Migration{
		{Version: 1, Name: "no_down", Up: `CREATE TABLE one_way (v TEXT)`},
	})
	require.NoError(t, m.Apply(ctx))

	err := m.Rollback(ctx, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no down statement")
}
