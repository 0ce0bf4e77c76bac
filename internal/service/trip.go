// Package service contains the business logic for the State Plate Game
// backend. Services validate inputs, enforce the rules the repositories don't
// know about (active-trip exclusivity, no toggling after completion,
// auto-completion at 50/50), and orchestrate repo calls. No SQL lives here —
// services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/d3nnyP/state-game-app/internal/domain"
	"github.com/d3nnyP/state-game-app/internal/repo"
)

// dateFormat is the wire format for calendar dates in service inputs.
const dateFormat = "2006-01-02"

// CreateTripInput is the raw user-supplied data for a new trip. Dates arrive
// as strings because validating that they parse is this layer's job.
type CreateTripInput struct {
	Name          string `json:"name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date,omitempty"`
	StartLocation string `json:"start_location"`
	Destination   string `json:"destination"`
}

// TripService implements business logic for trip lifecycle operations.
// It is the only mutation entry point presentation code may use.
type TripService struct {
	trips  repo.TripRepo
	obs    repo.ObservationRepo
	states []domain.State
	byCode map[string]domain.State
}

// NewTripService constructs a TripService backed by the provided repos and
// the configured state reference set.
func NewTripService(trips repo.TripRepo, obs repo.ObservationRepo, states []domain.State) *TripService {
	byCode := make(map[string]domain.State, len(states))
	for _, st := range states {
		byCode[st.Code] = st
	}
	return &TripService{trips: trips, obs: obs, states: states, byCode: byCode}
}

// CreateTrip validates and persists a new trip.
// Returns domain.ErrValidation (a *domain.ValidationError with per-field
// messages) for invalid input, and domain.ErrConflict when an active trip
// already exists — the prior trip is never auto-completed or deleted.
func (s *TripService) CreateTrip(ctx context.Context, input CreateTripInput) (domain.Trip, error) {
	trip, verr := validateCreate(input)
	if verr != nil {
		return domain.Trip{}, verr
	}

	_, err := s.trips.GetActive(ctx)
	switch {
	case err == nil:
		return domain.Trip{}, fmt.Errorf("service.TripService.CreateTrip: %w: an active trip already exists", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Trip{}, fmt.Errorf("service.TripService.CreateTrip: %w", err)
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.CreateTrip: %w", err)
	}
	return created, nil
}

// GetTrip returns a single trip by ID.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetTrip: %w", err)
	}
	return trip, nil
}

// ListTrips returns all trips, most recently created first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListTrips: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// UpdateTrip validates and applies a partial update to an existing trip.
// End date, when both dates are involved, must stay strictly after the start
// date.
func (s *TripService) UpdateTrip(ctx context.Context, tripID string, upd domain.TripUpdate) (domain.Trip, error) {
	if upd.IsEmpty() {
		return domain.Trip{}, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "update", Message: "at least one field is required"},
		}}
	}

	current, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateTrip: %w", err)
	}

	var fields []domain.FieldError
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if trimmed == "" {
			fields = append(fields, domain.FieldError{Field: "name", Message: "is required"})
		} else {
			upd.Name = &trimmed
		}
	}
	if upd.StartLocation != nil {
		trimmed := strings.TrimSpace(*upd.StartLocation)
		if trimmed == "" {
			fields = append(fields, domain.FieldError{Field: "start_location", Message: "is required"})
		} else {
			upd.StartLocation = &trimmed
		}
	}
	if upd.Destination != nil {
		trimmed := strings.TrimSpace(*upd.Destination)
		if trimmed == "" {
			fields = append(fields, domain.FieldError{Field: "destination", Message: "is required"})
		} else {
			upd.Destination = &trimmed
		}
	}

	start := current.StartDate
	if upd.StartDate != nil {
		start = *upd.StartDate
	}
	end := current.EndDate
	if upd.EndDate != nil {
		end = upd.EndDate
	}
	if end != nil && !end.After(start) {
		fields = append(fields, domain.FieldError{Field: "end_date", Message: "must be after start date"})
	}

	if len(fields) > 0 {
		return domain.Trip{}, &domain.ValidationError{Fields: fields}
	}

	updated, err := s.trips.Update(ctx, tripID, upd)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateTrip: %w", err)
	}
	return updated, nil
}

// ToggleState flips the spotted status of one state for one trip and returns
// the new status (true = now spotted). When the toggle brings the trip to the
// full reference-set count, the trip is marked complete automatically.
//
// Returns domain.ErrNotFound for an unknown state code or trip, and
// domain.ErrConflict when the trip is already complete.
func (s *TripService) ToggleState(ctx context.Context, tripID, stateCode string) (bool, error) {
	if _, ok := s.byCode[stateCode]; !ok {
		return false, fmt.Errorf("service.TripService.ToggleState: state %q: %w", stateCode, domain.ErrNotFound)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return false, fmt.Errorf("service.TripService.ToggleState: %w", err)
	}
	if trip.IsComplete {
		return false, fmt.Errorf("service.TripService.ToggleState: %w: trip is already complete", domain.ErrConflict)
	}

	spotted, err := s.obs.Toggle(ctx, tripID, stateCode)
	if err != nil {
		return false, fmt.Errorf("service.TripService.ToggleState: %w", err)
	}

	progress, err := s.obs.ProgressForTrip(ctx, tripID)
	if err != nil {
		return spotted, fmt.Errorf("service.TripService.ToggleState: %w", err)
	}
	if progress.Found == progress.Total {
		if err := s.trips.MarkComplete(ctx, tripID); err != nil {
			return spotted, fmt.Errorf("service.TripService.ToggleState: %w", err)
		}
	}

	return spotted, nil
}

// CompleteTrip marks a trip complete independent of the 50/50 auto-trigger.
// Returns domain.ErrConflict when the trip is already complete.
func (s *TripService) CompleteTrip(ctx context.Context, tripID string) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.CompleteTrip: %w", err)
	}
	if trip.IsComplete {
		return fmt.Errorf("service.TripService.CompleteTrip: %w: trip is already complete", domain.ErrConflict)
	}
	if err := s.trips.MarkComplete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.CompleteTrip: %w", err)
	}
	return nil
}

// DeleteTrip removes a trip and its observations. Observations are deleted
// first and must fully succeed before the trip row is touched, so an
// interruption between the two steps can never leave dangling observations.
func (s *TripService) DeleteTrip(ctx context.Context, tripID string) error {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.DeleteTrip: %w", err)
	}
	if err := s.obs.DeleteAllForTrip(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.DeleteTrip: %w", err)
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.DeleteTrip: %w", err)
	}
	return nil
}

// GetTripState returns the composite view presentation code consumes: the
// trip, its progress, the raw observations, and the full reference set
// annotated with per-state spotted status.
func (s *TripService) GetTripState(ctx context.Context, tripID string) (domain.TripState, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripState{}, fmt.Errorf("service.TripService.GetTripState: %w", err)
	}

	obs, err := s.obs.ListForTrip(ctx, tripID)
	if err != nil {
		return domain.TripState{}, fmt.Errorf("service.TripService.GetTripState: %w", err)
	}

	progress, err := s.obs.ProgressForTrip(ctx, tripID)
	if err != nil {
		return domain.TripState{}, fmt.Errorf("service.TripService.GetTripState: %w", err)
	}

	spottedAt := make(map[string]time.Time, len(obs))
	for _, o := range obs {
		spottedAt[o.StateCode] = o.SpottedAt
	}

	states := make([]domain.StateStatus, len(s.states))
	for i, st := range s.states {
		status := domain.StateStatus{Code: st.Code, Name: st.Name}
		if ts, ok := spottedAt[st.Code]; ok {
			status.Spotted = true
			tsCopy := ts
			status.SpottedAt = &tsCopy
		}
		states[i] = status
	}

	return domain.TripState{
		Trip:         trip,
		Progress:     progress,
		Observations: obs,
		States:       states,
	}, nil
}

// GetActiveTripState composes GetActive and GetTripState.
// Returns domain.ErrNotFound when no trip is active.
func (s *TripService) GetActiveTripState(ctx context.Context) (domain.TripState, error) {
	active, err := s.trips.GetActive(ctx)
	if err != nil {
		return domain.TripState{}, fmt.Errorf("service.TripService.GetActiveTripState: %w", err)
	}
	return s.GetTripState(ctx, active.ID)
}

// validateCreate enforces the trip-creation rules and maps the input onto a
// domain.Trip with trimmed string fields.
//   - Name, start date, start location, and destination must be non-empty
//     after trimming.
//   - Start date must parse as a calendar date.
//   - End date, if present, must parse and be strictly after the start date.
func validateCreate(input CreateTripInput) (domain.Trip, *domain.ValidationError) {
	var fields []domain.FieldError

	name := strings.TrimSpace(input.Name)
	if name == "" {
		fields = append(fields, domain.FieldError{Field: "name", Message: "is required"})
	}
	startLocation := strings.TrimSpace(input.StartLocation)
	if startLocation == "" {
		fields = append(fields, domain.FieldError{Field: "start_location", Message: "is required"})
	}
	destination := strings.TrimSpace(input.Destination)
	if destination == "" {
		fields = append(fields, domain.FieldError{Field: "destination", Message: "is required"})
	}

	var startDate time.Time
	rawStart := strings.TrimSpace(input.StartDate)
	if rawStart == "" {
		fields = append(fields, domain.FieldError{Field: "start_date", Message: "is required"})
	} else {
		var err error
		startDate, err = time.Parse(dateFormat, rawStart)
		if err != nil {
			fields = append(fields, domain.FieldError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	var endDate *time.Time
	if rawEnd := strings.TrimSpace(input.EndDate); rawEnd != "" {
		ed, err := time.Parse(dateFormat, rawEnd)
		switch {
		case err != nil:
			fields = append(fields, domain.FieldError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		case !startDate.IsZero() && !ed.After(startDate):
			fields = append(fields, domain.FieldError{Field: "end_date", Message: "must be after start date"})
		default:
			endDate = &ed
		}
	}

	if len(fields) > 0 {
		return domain.Trip{}, &domain.ValidationError{Fields: fields}
	}

	return domain.Trip{
		Name:          name,
		StartDate:     startDate,
		EndDate:       endDate,
		StartLocation: startLocation,
		Destination:   destination,
	}, nil
}
