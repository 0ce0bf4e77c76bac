package domain

import "time"

// Tier is the achievement classification for a trip's spotted-state count.
type Tier string

// Tier thresholds: gold requires all 50, silver at least 40, everything else
// classifies as bronze. There is no "none" tier.
const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// CompletionEvent describes one trip reaching completion.
type CompletionEvent struct {
	TripID        string        `json:"trip_id"`
	Name          string        `json:"name"`
	CompletedAt   time.Time     `json:"completed_at"`
	TotalStates   int           `json:"total_states"`
	SpottedStates int           `json:"spotted_states"`
	Elapsed       time.Duration `json:"elapsed"`
	Tier          Tier          `json:"tier"`
}

// CompletionStats aggregates completion history across all trips.
// AverageElapsed and MinElapsed are zero when no trip has completed yet.
type CompletionStats struct {
	TotalTrips        int               `json:"total_trips"`
	CompletedTrips    int               `json:"completed_trips"`
	AverageElapsed    time.Duration     `json:"average_elapsed"`
	MinElapsed        time.Duration     `json:"min_elapsed"`
	TierCounts        map[Tier]int      `json:"tier_counts"`
	RecentCompletions []CompletionEvent `json:"recent_completions"`
}

// Milestone is one entry of the fixed completion checklist. Progress is a
// 0-100 percentage toward the milestone's threshold; it is pinned at 100 once
// Achieved is true.
type Milestone struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Achieved bool   `json:"achieved"`
	Progress int    `json:"progress"`
}
