package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d3nnyP/state-game-app/internal/config"
	"github.com/d3nnyP/state-game-app/internal/domain"
	"github.com/d3nnyP/state-game-app/internal/repo"
	"github.com/d3nnyP/state-game-app/internal/service"
	"github.com/d3nnyP/state-game-app/testutil"
)

// newRealServices wires the full stack against an isolated in-memory store.
func newRealServices(t *testing.T) (*service.TripService, *service.CompletionService) {
	t.Helper()

	s := testutil.NewStore(t)
	states := config.USStates()
	trips := repo.NewTripRepo(s)
	obs := repo.NewObservationRepo(s, len(states))
	tripSvc := service.NewTripService(trips, obs, states)
	compSvc := service.NewCompletionService(trips, obs, tripSvc, len(states))
	return tripSvc, compSvc
}

// TestIntegration_TripLifecycle drives a whole session against real repos and
// a real store: create a trip, spot two states, verify progress, un-spot one,
// verify progress drops.
func TestIntegration_TripLifecycle(t *testing.T) {
	tripSvc, _ := newRealServices(t)
	ctx := context.Background()

	trip, err := tripSvc.CreateTrip(ctx, service.CreateTripInput{
		Name:          "Road Trip",
		StartDate:     "2024-01-01",
		StartLocation: "New York",
		Destination:   "California",
	})
	require.NoError(t, err)
	require.NotEmpty(t, trip.ID)
	assert.False(t, trip.IsComplete)

	spotted, err := tripSvc.ToggleState(ctx, trip.ID, "CA")
	require.NoError(t, err)
	assert.True(t, spotted)

	spotted, err = tripSvc.ToggleState(ctx, trip.ID, "NY")
	require.NoError(t, err)
	assert.True(t, spotted)

	state, err := tripSvc.GetTripState(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Progress{Found: 2, Total: 50, Percentage: 4}, state.Progress)
	require.Len(t, state.Observations, 2)

	// Toggling a spotted state back off removes the observation.
	spotted, err = tripSvc.ToggleState(ctx, trip.ID, "CA")
	require.NoError(t, err)
	assert.False(t, spotted)

	state, err = tripSvc.GetTripState(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Progress{Found: 1, Total: 50, Percentage: 2}, state.Progress)
	require.Len(t, state.Observations, 1)
	assert.Equal(t, "NY", state.Observations[0].StateCode)
}

// TestIntegration_ActiveTripExclusivity verifies a second create fails while
// the first trip is active, then succeeds after it completes.
func TestIntegration_ActiveTripExclusivity(t *testing.T) {
	tripSvc, _ := newRealServices(t)
	ctx := context.Background()

	first, err := tripSvc.CreateTrip(ctx, service.CreateTripInput{
		Name:          "First",
		StartDate:     "2024-01-01",
		StartLocation: "A",
		Destination:   "B",
	})
	require.NoError(t, err)

	_, err = tripSvc.CreateTrip(ctx, service.CreateTripInput{
		Name:          "Second",
		StartDate:     "2024-02-01",
		StartLocation: "C",
		Destination:   "D",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, tripSvc.CompleteTrip(ctx, first.ID))

	second, err := tripSvc.CreateTrip(ctx, service.CreateTripInput{
		Name:          "Second",
		StartDate:     "2024-02-01",
		StartLocation: "C",
		Destination:   "D",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

// TestIntegration_AutoCompleteAtFiftyStates spots every reference state and
// verifies the trip flips to complete without an explicit CompleteTrip call.
func TestIntegration_AutoCompleteAtFiftyStates(t *testing.T) {
	tripSvc, compSvc := newRealServices(t)
	ctx := context.Background()

	trip, err := tripSvc.CreateTrip(ctx, service.CreateTripInput{
		Name:          "The Full Set",
		StartDate:     "2024-01-01",
		StartLocation: "Anchorage",
		Destination:   "Cheyenne",
	})
	require.NoError(t, err)

	for _, st := range config.USStates() {
		spotted, err := tripSvc.ToggleState(ctx, trip.ID, st.Code)
		require.NoError(t, err, "toggling %s", st.Code)
		require.True(t, spotted)
	}

	got, err := tripSvc.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.True(t, got.IsComplete, "trip should auto-complete after the 50th state")

	// Further toggles are rejected once complete.
	_, err = tripSvc.ToggleState(ctx, trip.ID, "CA")
	assert.ErrorIs(t, err, domain.ErrConflict)

	stats, err := compSvc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CompletedTrips)
	assert.Equal(t, 1, stats.TierCounts[domain.TierGold])
}

// TestIntegration_DeleteTripRemovesObservations verifies cascade semantics at
// the service level: after a delete the trip and its observations are gone.
func TestIntegration_DeleteTripRemovesObservations(t *testing.T) {
	tripSvc, _ := newRealServices(t)
	ctx := context.Background()

	trip, err := tripSvc.CreateTrip(ctx, service.CreateTripInput{
		Name:          "Short Trip",
		StartDate:     "2024-03-01",
		StartLocation: "Boise",
		Destination:   "Helena",
	})
	require.NoError(t, err)

	_, err = tripSvc.ToggleState(ctx, trip.ID, "ID")
	require.NoError(t, err)
	_, err = tripSvc.ToggleState(ctx, trip.ID, "MT")
	require.NoError(t, err)

	require.NoError(t, tripSvc.DeleteTrip(ctx, trip.ID))

	_, err = tripSvc.GetTrip(ctx, trip.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = tripSvc.DeleteTrip(ctx, trip.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
