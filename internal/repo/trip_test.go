package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d3nnyP/state-game-app/internal/domain"
	"github.com/d3nnyP/state-game-app/internal/repo"
	"github.com/d3nnyP/state-game-app/testutil"
)

// newTripRepo returns a TripRepo backed by a fresh migrated in-memory store.
// Each test gets its own isolated database — no cleanup needed.
func newTripRepo(t *testing.T) repo.TripRepo {
	t.Helper()
	return repo.NewTripRepo(testutil.NewStore(t))
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	return domain.Trip{
		Name:          "Summer Tour",
		StartDate:     start,
		EndDate:       &end,
		StartLocation: "Denver",
		Destination:   "Portland",
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := newTripRepo(t)
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEmpty(t, got.ID, "ID should be generated")
	assert.Equal(t, input.Name, got.Name)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	require.NotNil(t, got.EndDate, "EndDate should not be nil")
	assert.True(t, got.EndDate.Equal(*input.EndDate), "EndDate mismatch")
	assert.Equal(t, input.StartLocation, got.StartLocation)
	assert.Equal(t, input.Destination, got.Destination)
	assert.False(t, got.IsComplete, "new trips start incomplete")
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set")
}

// TestTripRepo_Create_RoundTrip verifies that GetByID returns a value equal
// in all fields to what Create returned.
func TestTripRepo_Create_RoundTrip(t *testing.T) {
	r := newTripRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
	assert.True(t, got.StartDate.Equal(created.StartDate))
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(*created.EndDate))
	assert.Equal(t, created.StartLocation, got.StartLocation)
	assert.Equal(t, created.Destination, got.Destination)
	assert.Equal(t, created.IsComplete, got.IsComplete)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
}

func TestTripRepo_Create_NilEndDate(t *testing.T) {
	r := newTripRepo(t)
	ctx := context.Background()

	input := tripFixture()
	input.EndDate = nil // no end date set

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Nil(t, got.EndDate, "EndDate should be nil when not provided")

	fetched, err := r.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.EndDate)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := newTripRepo(t)

	_, err := r.GetByID(context.Background(), "no-such-trip")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestTripRepo_List_OrderedByCreatedAtDesc verifies the ordering contract:
// most recently created first. History screens rely on it.
func TestTripRepo_List_OrderedByCreatedAtDesc(t *testing.T) {
	r := newTripRepo(t)
	ctx := context.Background()

	first := tripFixture()
	first.Name = "First Trip"
	second := tripFixture()
	second.Name = "Second Trip"

	_, err := r.Create(ctx, first)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond) // distinct createdAt
	_, err = r.Create(ctx, second)
	require.NoError(t, err)

	trips, err := r.List(ctx)

	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "Second Trip", trips[0].Name, "newest first")
	assert.Equal(t, "First Trip", trips[1].Name)
}

func TestTripRepo_Update_PartialFields(t *testing.T) {
	r := newTripRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	newName := "Renamed Tour"
	updated, err := r.Update(ctx, created.ID, domain.TripUpdate{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Renamed Tour", updated.Name)
	// Untouched fields keep their values.
	assert.Equal(t, created.StartLocation, updated.StartLocation)
	assert.Equal(t, created.Destination, updated.Destination)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt), "CreatedAt is immutable")
}

func TestTripRepo_Update_EmptyFieldSet(t *testing.T) {
	r := newTripRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	_, err = r.Update(ctx, created.ID, domain.TripUpdate{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := newTripRepo(t)

	name := "Ghost"
	_, err := r.Update(context.Background(), "no-such-trip", domain.TripUpdate{Name: &name})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete(t *testing.T) {
	r := newTripRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	err = r.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := newTripRepo(t)

	err := r.Delete(context.Background(), "no-such-trip")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_GetActive(t *testing.T) {
	r := newTripRepo(t)
	ctx := context.Background()

	_, err := r.GetActive(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound, "no trips yet")

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	active, err := r.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, active.ID)
}

func TestTripRepo_GetActive_IgnoresCompleted(t *testing.T) {
	r := newTripRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)
	require.NoError(t, r.MarkComplete(ctx, created.ID))

	_, err = r.GetActive(ctx)

	assert.ErrorIs(t, err, domain.ErrNotFound, "completed trips are never active")
}

func TestTripRepo_MarkComplete_Idempotent(t *testing.T) {
	r := newTripRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	require.NoError(t, r.MarkComplete(ctx, created.ID))
	require.NoError(t, r.MarkComplete(ctx, created.ID), "second call is not an error")

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsComplete)
}

// TestTimestampFormat_TextOrderMatchesTimeOrder verifies the fixed-width
// timestamp layout: a whole-second timestamp must sort before a fractional
// one in the same second under plain TEXT comparison, since the createdAt and
// spottedAt ORDER BY clauses compare stored strings, not parsed times.
func TestTimestampFormat_TextOrderMatchesTimeOrder(t *testing.T) {
	wholeSecond := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	halfSecondLater := wholeSecond.Add(500 * time.Millisecond)

	earlier := wholeSecond.Format(repo.TimestampFormat)
	later := halfSecondLater.Format(repo.TimestampFormat)

	assert.Less(t, earlier, later)
	assert.Len(t, later, len(earlier), "layout must be fixed-width")

	// Stored values must still parse back losslessly.
	parsed, err := time.Parse(time.RFC3339Nano, later)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(halfSecondLater))
}
