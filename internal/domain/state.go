package domain

import "time"

// State is one entry of the fixed 50-state reference set: a two-letter code
// and a display name. The set itself is supplied by the config package and is
// never persisted.
type State struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// StateStatus is one reference-set entry annotated with its spotted status for
// a particular trip. SpottedAt is nil when the state has not been spotted.
type StateStatus struct {
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Spotted   bool       `json:"spotted"`
	SpottedAt *time.Time `json:"spotted_at,omitempty"`
}

// TripState is the composite view the presentation layer consumes: the trip,
// its derived progress, the raw observations, and the full reference set
// annotated per entry. Callers never need a further join.
type TripState struct {
	Trip         Trip          `json:"trip"`
	Progress     Progress      `json:"progress"`
	Observations []Observation `json:"observations"`
	States       []StateStatus `json:"states"`
}
