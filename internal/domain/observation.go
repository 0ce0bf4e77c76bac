package domain

import "time"

// Observation records one state's plate having been spotted during a trip.
// Presence of the row is the "found" signal — there is no found/unfound flag.
// The (TripID, StateCode) pair is unique per the observations table constraint.
type Observation struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	StateCode string    `json:"state_code"`
	SpottedAt time.Time `json:"spotted_at"`
}

// Progress is the derived found/total/percentage triple for one trip.
// It is computed on demand and never stored.
type Progress struct {
	Found      int `json:"found"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// StateCount pairs a state code with its cross-trip observation frequency.
type StateCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// AggregateStats summarizes observation activity across all trips.
// MostSpotted holds the top-10 state codes by frequency descending and Rarest
// the bottom-10 ascending; ties are broken by state code ascending so the
// ordering is deterministic.
type AggregateStats struct {
	TotalTrips        int          `json:"total_trips"`
	CompletedTrips    int          `json:"completed_trips"`
	TotalObservations int          `json:"total_observations"`
	MostSpotted       []StateCount `json:"most_spotted"`
	Rarest            []StateCount `json:"rarest"`
}
