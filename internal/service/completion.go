package service

import (
	"context"
	"fmt"
	"time"

	"github.com/d3nnyP/state-game-app/internal/domain"
	"github.com/d3nnyP/state-game-app/internal/repo"
)

// recentCompletionLimit caps how many completion events Statistics returns.
const recentCompletionLimit = 5

// CompletionService derives achievement tiers and completion statistics from
// trip and observation data. It is read-only over the core entities; actual
// completion is delegated to TripService.
type CompletionService struct {
	trips   repo.TripRepo
	obs     repo.ObservationRepo
	tripSvc *TripService
	total   int
}

// NewCompletionService constructs a CompletionService. total is the size of
// the state reference set.
func NewCompletionService(trips repo.TripRepo, obs repo.ObservationRepo, tripSvc *TripService, total int) *CompletionService {
	return &CompletionService{trips: trips, obs: obs, tripSvc: tripSvc, total: total}
}

// AchievementTier classifies a spotted-state count. Evaluated highest-first:
// gold for the full set, silver at 40+, bronze otherwise. Counts below 25
// also classify as bronze — there is no "none" tier.
func (s *CompletionService) AchievementTier(statesFound int) domain.Tier {
	switch {
	case statesFound == s.total:
		return domain.TierGold
	case statesFound >= 40:
		return domain.TierSilver
	default:
		return domain.TierBronze
	}
}

// CheckAndComplete completes the trip if its progress has reached the full
// reference set, returning the resulting completion event. A nil event with
// a nil error means the trip is not yet complete — a valid steady state, not
// an error.
func (s *CompletionService) CheckAndComplete(ctx context.Context, tripID string) (*domain.CompletionEvent, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.CompletionService.CheckAndComplete: %w", err)
	}
	if trip.IsComplete {
		return nil, nil
	}

	progress, err := s.obs.ProgressForTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.CompletionService.CheckAndComplete: %w", err)
	}
	if progress.Found < progress.Total {
		return nil, nil
	}

	if err := s.tripSvc.CompleteTrip(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.CompletionService.CheckAndComplete: %w", err)
	}

	completedAt := time.Now().UTC()
	event := domain.CompletionEvent{
		TripID:        trip.ID,
		Name:          trip.Name,
		CompletedAt:   completedAt,
		TotalStates:   progress.Total,
		SpottedStates: progress.Found,
		Elapsed:       completedAt.Sub(trip.StartDate),
		Tier:          s.AchievementTier(progress.Found),
	}
	return &event, nil
}

// Statistics aggregates completion history across all trips: totals, tier
// counts, average and minimum elapsed duration among completed trips, and
// the most recently completed events.
func (s *CompletionService) Statistics(ctx context.Context) (domain.CompletionStats, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return domain.CompletionStats{}, fmt.Errorf("service.CompletionService.Statistics: %w", err)
	}

	stats := domain.CompletionStats{
		TotalTrips:        len(trips),
		TierCounts:        map[domain.Tier]int{},
		RecentCompletions: []domain.CompletionEvent{},
	}

	var totalElapsed time.Duration
	for _, trip := range trips {
		if !trip.IsComplete {
			continue
		}

		event, err := s.completionEvent(ctx, trip)
		if err != nil {
			return domain.CompletionStats{}, fmt.Errorf("service.CompletionService.Statistics: %w", err)
		}

		stats.CompletedTrips++
		stats.TierCounts[event.Tier]++
		totalElapsed += event.Elapsed
		// Zero is a valid elapsed value (clamped for trips completed before
		// their start date), so the first completed trip seeds the minimum
		// unconditionally.
		if stats.CompletedTrips == 1 || event.Elapsed < stats.MinElapsed {
			stats.MinElapsed = event.Elapsed
		}
		// trips.List is createdAt-descending, so the first completed trips
		// encountered are the most recent ones.
		if len(stats.RecentCompletions) < recentCompletionLimit {
			stats.RecentCompletions = append(stats.RecentCompletions, event)
		}
	}

	if stats.CompletedTrips > 0 {
		stats.AverageElapsed = totalElapsed / time.Duration(stats.CompletedTrips)
	}
	return stats, nil
}

// StateStats reports observation activity across all trips: totals plus the
// most and least frequently spotted states.
func (s *CompletionService) StateStats(ctx context.Context) (domain.AggregateStats, error) {
	stats, err := s.obs.AggregateStats(ctx)
	if err != nil {
		return domain.AggregateStats{}, fmt.Errorf("service.CompletionService.StateStats: %w", err)
	}
	return stats, nil
}

// Milestones reports the fixed completion checklist: first completion, each
// tier reached at least once, 5 completions, 10 completions. Each entry
// carries a 0-100 progress percentage toward its threshold.
func (s *CompletionService) Milestones(ctx context.Context) ([]domain.Milestone, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CompletionService.Milestones: %w", err)
	}

	var (
		completed int
		bestFound int
		tiersSeen = map[domain.Tier]bool{}
	)
	for _, trip := range trips {
		if !trip.IsComplete {
			continue
		}
		completed++

		progress, err := s.obs.ProgressForTrip(ctx, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("service.CompletionService.Milestones: %w", err)
		}
		if progress.Found > bestFound {
			bestFound = progress.Found
		}
		tiersSeen[s.AchievementTier(progress.Found)] = true
	}

	return []domain.Milestone{
		countMilestone("first_completion", "Complete your first trip", completed, 1),
		tierMilestone("bronze_reached", "Reach the bronze tier", tiersSeen[domain.TierBronze], bestFound, 1),
		tierMilestone("silver_reached", "Reach the silver tier", tiersSeen[domain.TierSilver], bestFound, 40),
		tierMilestone("gold_reached", "Reach the gold tier", tiersSeen[domain.TierGold], bestFound, s.total),
		countMilestone("five_completions", "Complete 5 trips", completed, 5),
		countMilestone("ten_completions", "Complete 10 trips", completed, 10),
	}, nil
}

// completionEvent reconstructs the completion event for an already-completed
// trip. The completion instant is not persisted by the schema, so it is
// derived from the latest observation timestamp — the moment the final state
// was spotted — falling back to the trip's creation timestamp for trips
// completed manually with no observations.
func (s *CompletionService) completionEvent(ctx context.Context, trip domain.Trip) (domain.CompletionEvent, error) {
	obs, err := s.obs.ListForTrip(ctx, trip.ID)
	if err != nil {
		return domain.CompletionEvent{}, err
	}

	completedAt := trip.CreatedAt
	if len(obs) > 0 {
		// ListForTrip is spottedAt-ascending; the last row is the newest.
		completedAt = obs[len(obs)-1].SpottedAt
	}

	elapsed := completedAt.Sub(trip.StartDate)
	if elapsed < 0 {
		elapsed = 0
	}

	return domain.CompletionEvent{
		TripID:        trip.ID,
		Name:          trip.Name,
		CompletedAt:   completedAt,
		TotalStates:   s.total,
		SpottedStates: len(obs),
		Elapsed:       elapsed,
		Tier:          s.AchievementTier(len(obs)),
	}, nil
}

// countMilestone builds a completed-trip-count milestone.
func countMilestone(key, label string, completed, threshold int) domain.Milestone {
	return domain.Milestone{
		Key:      key,
		Label:    label,
		Achieved: completed >= threshold,
		Progress: progressPct(completed, threshold),
	}
}

// tierMilestone builds a tier-reached milestone. Progress tracks the best
// spotted-state count across completed trips toward the tier's threshold.
func tierMilestone(key, label string, achieved bool, bestFound, threshold int) domain.Milestone {
	if achieved {
		return domain.Milestone{Key: key, Label: label, Achieved: true, Progress: 100}
	}
	return domain.Milestone{
		Key:      key,
		Label:    label,
		Progress: progressPct(bestFound, threshold),
	}
}

// progressPct converts value/threshold into a 0-100 integer percentage.
func progressPct(value, threshold int) int {
	if value >= threshold {
		return 100
	}
	if value <= 0 {
		return 0
	}
	return value * 100 / threshold
}
