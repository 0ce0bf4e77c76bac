package config

import "github.com/d3nnyP/state-game-app/internal/domain"

// USStates returns the fixed 50-entry state reference set, ordered by code.
// A fresh slice is returned on every call so callers cannot mutate the set
// out from under each other.
func USStates() []domain.State {
	states := make([]domain.State, len(usStates))
	copy(states, usStates)
	return states
}

var usStates = []domain.State{
	{Code: "AK", Name: "Alaska"},
	{Code: "AL", Name: "Alabama"},
	{Code: "AR", Name: "Arkansas"},
	{Code: "AZ", Name: "Arizona"},
	{Code: "CA", Name: "California"},
	{Code: "CO", Name: "Colorado"},
	{Code: "CT", Name: "Connecticut"},
	{Code: "DE", Name: "Delaware"},
	{Code: "FL", Name: "Florida"},
	{Code: "GA", Name: "Georgia"},
	{Code: "HI", Name: "Hawaii"},
	{Code: "IA", Name: "Iowa"},
	{Code: "ID", Name: "Idaho"},
	{Code: "IL", Name: "Illinois"},
	{Code: "IN", Name: "Indiana"},
	{Code: "KS", Name: "Kansas"},
	{Code: "KY", Name: "Kentucky"},
	{Code: "LA", Name: "Louisiana"},
	{Code: "MA", Name: "Massachusetts"},
	{Code: "MD", Name: "Maryland"},
	{Code: "ME", Name: "Maine"},
	{Code: "MI", Name: "Michigan"},
	{Code: "MN", Name: "Minnesota"},
	{Code: "MO", Name: "Missouri"},
	{Code: "MS", Name: "Mississippi"},
	{Code: "MT", Name: "Montana"},
	{Code: "NC", Name: "North Carolina"},
	{Code: "ND", Name: "North Dakota"},
	{Code: "NE", Name: "Nebraska"},
	{Code: "NH", Name: "New Hampshire"},
	{Code: "NJ", Name: "New Jersey"},
	{Code: "NM", Name: "New Mexico"},
	{Code: "NV", Name: "Nevada"},
	{Code: "NY", Name: "New York"},
	{Code: "OH", Name: "Ohio"},
	{Code: "OK", Name: "Oklahoma"},
	{Code: "OR", Name: "Oregon"},
	{Code: "PA", Name: "Pennsylvania"},
	{Code: "RI", Name: "Rhode Island"},
	{Code: "SC", Name: "South Carolina"},
	{Code: "SD", Name: "South Dakota"},
	{Code: "TN", Name: "Tennessee"},
	{Code: "TX", Name: "Texas"},
	{Code: "UT", Name: "Utah"},
	{Code: "VA", Name: "Virginia"},
	{Code: "VT", Name: "Vermont"},
	{Code: "WA", Name: "Washington"},
	{Code: "WI", Name: "Wisconsin"},
	{Code: "WV", Name: "West Virginia"},
	{Code: "WY", Name: "Wyoming"},
}
