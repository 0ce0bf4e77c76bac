// Package domain contains the core data types for the State Plate Game backend.
// This package has zero external dependencies and is imported by every other
// internal package (store, migrate, repo, service, handler).
package domain

import "time"

// Trip represents a single road-trip session ("game" in user-facing text).
// A trip is the top-level aggregate; observations belong to a trip.
type Trip struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"` // nil when no end date was set
	StartLocation string     `json:"start_location"`
	Destination   string     `json:"destination"`
	IsComplete    bool       `json:"is_complete"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TripUpdate carries a partial field set for updating a trip.
// Nil fields are left untouched. ID and CreatedAt are never updatable.
type TripUpdate struct {
	Name          *string
	StartDate     *time.Time
	EndDate       *time.Time
	StartLocation *string
	Destination   *string
	IsComplete    *bool
}

// IsEmpty reports whether no field is set. Repos reject empty updates with
// ErrValidation rather than issuing a no-op UPDATE.
func (u TripUpdate) IsEmpty() bool {
	return u.Name == nil && u.StartDate == nil && u.EndDate == nil &&
		u.StartLocation == nil && u.Destination == nil && u.IsComplete == nil
}
