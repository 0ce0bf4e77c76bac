package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/d3nnyP/state-game-app/internal/domain"
)

// ObservationRepo defines the persistence operations for spotted-state
// observations: CRUD scoped to a trip, uniqueness enforcement, and the
// aggregate progress queries.
type ObservationRepo interface {
	// Add inserts an observation with the current timestamp. Returns
	// domain.ErrDuplicateObservation when the (tripID, stateCode) pair
	// already exists.
	Add(ctx context.Context, tripID, stateCode string) (domain.Observation, error)

	// Remove deletes the matching observation if present. Removing a
	// non-existent observation is a no-op, not an error.
	Remove(ctx context.Context, tripID, stateCode string) error

	// Toggle removes the observation and returns false if present, or adds
	// it and returns true if absent. Safe under the single-writer model
	// only — concurrent callers for the same pair would need an atomic
	// upsert-or-delete instead.
	Toggle(ctx context.Context, tripID, stateCode string) (bool, error)

	// ListForTrip returns the trip's observations ordered by spottedAt
	// ascending.
	ListForTrip(ctx context.Context, tripID string) ([]domain.Observation, error)

	// IsSpotted reports whether the pair exists.
	IsSpotted(ctx context.Context, tripID, stateCode string) (bool, error)

	// ProgressForTrip returns the derived found/total/percentage triple.
	ProgressForTrip(ctx context.Context, tripID string) (domain.Progress, error)

	// DeleteAllForTrip removes every observation belonging to the trip.
	// Called by the service before deleting the trip itself.
	DeleteAllForTrip(ctx context.Context, tripID string) error

	// AggregateStats summarizes observation activity across all trips.
	AggregateStats(ctx context.Context) (domain.AggregateStats, error)
}

// sqliteObservationRepo is the SQLite implementation of ObservationRepo.
// total is the reference-set size (50), injected by the composition root so
// progress math never hardcodes it.
type sqliteObservationRepo struct {
	db    db
	total int
}

// NewObservationRepo constructs an ObservationRepo backed by the provided
// store handle. total is the size of the state reference set.
func NewObservationRepo(db db, total int) ObservationRepo {
	return &sqliteObservationRepo{db: db, total: total}
}

// Add inserts a new observation row, translating the UNIQUE(tripId, stateCode)
// constraint failure into domain.ErrDuplicateObservation.
func (r *sqliteObservationRepo) Add(ctx context.Context, tripID, stateCode string) (domain.Observation, error) {
	obs := domain.Observation{
		ID:        uuid.New().String(),
		TripID:    tripID,
		StateCode: stateCode,
		SpottedAt: time.Now().UTC(),
	}

	const q = `
		INSERT INTO observations (id, tripId, stateCode, spottedAt)
		VALUES (?, ?, ?, ?)`

	_, err := r.db.Exec(ctx, q, obs.ID, obs.TripID, obs.StateCode, obs.SpottedAt.Format(timestampFormat))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Observation{}, fmt.Errorf("repo.ObservationRepo.Add: %s/%s: %w", tripID, stateCode, domain.ErrDuplicateObservation)
		}
		return domain.Observation{}, fmt.Errorf("repo.ObservationRepo.Add: %w", err)
	}
	return obs, nil
}

// Remove deletes the matching row. Zero rows affected is a valid no-op.
func (r *sqliteObservationRepo) Remove(ctx context.Context, tripID, stateCode string) error {
	const q = `DELETE FROM observations WHERE tripId = ? AND stateCode = ?`

	if _, err := r.db.Exec(ctx, q, tripID, stateCode); err != nil {
		return fmt.Errorf("repo.ObservationRepo.Remove: %w", err)
	}
	return nil
}

// Toggle flips the presence of the (tripID, stateCode) pair and returns the
// new spotted state. The check-then-act sequence is safe because the layer
// above never issues two toggles for the same pair concurrently.
func (r *sqliteObservationRepo) Toggle(ctx context.Context, tripID, stateCode string) (bool, error) {
	spotted, err := r.IsSpotted(ctx, tripID, stateCode)
	if err != nil {
		return false, fmt.Errorf("repo.ObservationRepo.Toggle: %w", err)
	}

	if spotted {
		if err := r.Remove(ctx, tripID, stateCode); err != nil {
			return false, fmt.Errorf("repo.ObservationRepo.Toggle: %w", err)
		}
		return false, nil
	}

	if _, err := r.Add(ctx, tripID, stateCode); err != nil {
		return false, fmt.Errorf("repo.ObservationRepo.Toggle: %w", err)
	}
	return true, nil
}

// ListForTrip returns the trip's observations ordered by spottedAt ascending.
func (r *sqliteObservationRepo) ListForTrip(ctx context.Context, tripID string) ([]domain.Observation, error) {
	const q = `
		SELECT id, tripId, stateCode, spottedAt
		FROM observations
		WHERE tripId = ?
		ORDER BY spottedAt ASC`

	rows, err := r.db.Query(ctx, q, tripID)
	if err != nil {
		return nil, fmt.Errorf("repo.ObservationRepo.ListForTrip: %w", err)
	}
	defer rows.Close()

	obs := []domain.Observation{}
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ObservationRepo.ListForTrip: scan: %w", err)
		}
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ObservationRepo.ListForTrip: rows: %w", err)
	}
	return obs, nil
}

// IsSpotted reports whether the pair exists.
func (r *sqliteObservationRepo) IsSpotted(ctx context.Context, tripID, stateCode string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM observations WHERE tripId = ? AND stateCode = ?)`

	row, err := r.db.QueryRow(ctx, q, tripID, stateCode)
	if err != nil {
		return false, fmt.Errorf("repo.ObservationRepo.IsSpotted: %w", err)
	}
	var exists int
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.ObservationRepo.IsSpotted: %w", err)
	}
	return exists != 0, nil
}

// ProgressForTrip computes found/total/percentage for one trip.
func (r *sqliteObservationRepo) ProgressForTrip(ctx context.Context, tripID string) (domain.Progress, error) {
	const q = `SELECT COUNT(*) FROM observations WHERE tripId = ?`

	row, err := r.db.QueryRow(ctx, q, tripID)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("repo.ObservationRepo.ProgressForTrip: %w", err)
	}
	var found int
	if err := row.Scan(&found); err != nil {
		return domain.Progress{}, fmt.Errorf("repo.ObservationRepo.ProgressForTrip: %w", err)
	}

	return domain.Progress{
		Found:      found,
		Total:      r.total,
		Percentage: int(math.Round(float64(found) / float64(r.total) * 100)),
	}, nil
}

// DeleteAllForTrip removes every observation for the trip. No-op when the
// trip has none.
func (r *sqliteObservationRepo) DeleteAllForTrip(ctx context.Context, tripID string) error {
	const q = `DELETE FROM observations WHERE tripId = ?`

	if _, err := r.db.Exec(ctx, q, tripID); err != nil {
		return fmt.Errorf("repo.ObservationRepo.DeleteAllForTrip: %w", err)
	}
	return nil
}

// AggregateStats summarizes observation activity across all trips.
// Frequency ties are broken by state code ascending in both rankings so the
// output is deterministic.
func (r *sqliteObservationRepo) AggregateStats(ctx context.Context) (domain.AggregateStats, error) {
	var stats domain.AggregateStats

	row, err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM trips),
			(SELECT COUNT(*) FROM trips WHERE isComplete = 1),
			(SELECT COUNT(*) FROM observations)`)
	if err != nil {
		return domain.AggregateStats{}, fmt.Errorf("repo.ObservationRepo.AggregateStats: %w", err)
	}
	if err := row.Scan(&stats.TotalTrips, &stats.CompletedTrips, &stats.TotalObservations); err != nil {
		return domain.AggregateStats{}, fmt.Errorf("repo.ObservationRepo.AggregateStats: %w", err)
	}

	stats.MostSpotted, err = r.stateFrequencies(ctx, "DESC")
	if err != nil {
		return domain.AggregateStats{}, fmt.Errorf("repo.ObservationRepo.AggregateStats: %w", err)
	}
	stats.Rarest, err = r.stateFrequencies(ctx, "ASC")
	if err != nil {
		return domain.AggregateStats{}, fmt.Errorf("repo.ObservationRepo.AggregateStats: %w", err)
	}

	return stats, nil
}

// stateFrequencies returns the 10 most or least frequently spotted state
// codes, depending on direction ("DESC" or "ASC"). Only spotted states are
// ranked — states with zero observations never appear.
func (r *sqliteObservationRepo) stateFrequencies(ctx context.Context, direction string) ([]domain.StateCount, error) {
	q := `
		SELECT stateCode, COUNT(*) AS cnt
		FROM observations
		GROUP BY stateCode
		ORDER BY cnt ` + direction + `, stateCode ASC
		LIMIT 10`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []domain.StateCount{}
	for rows.Next() {
		var c domain.StateCount
		if err := rows.Scan(&c.Code, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// scanObservation maps a single database row into a domain.Observation.
func scanObservation(s scanner) (domain.Observation, error) {
	var (
		o         domain.Observation
		spottedAt string
	)
	err := s.Scan(&o.ID, &o.TripID, &o.StateCode, &spottedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Observation{}, domain.ErrNotFound
		}
		return domain.Observation{}, err
	}
	o.SpottedAt, err = parseTimestamp(spottedAt)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("parse spottedAt: %w", err)
	}
	return o, nil
}

// isUniqueViolation detects a SQLite UNIQUE constraint failure by message.
// The driver keeps the constraint name in the error text
// ("UNIQUE constraint failed: observations.tripId, observations.stateCode"),
// which the store preserves when wrapping into domain.ErrQuery.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
