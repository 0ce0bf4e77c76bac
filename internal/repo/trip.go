// Package repo contains all database access logic for the State Plate Game
// backend. Each entity has its own file with an interface and a SQLite
// implementation. No business logic lives here — only SQL and type mapping.
// Raw store failures are translated into domain error kinds at this boundary;
// driver-specific error shapes never leak upward.
package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/d3nnyP/state-game-app/internal/domain"
)

// db is the minimal statement-execution interface satisfied by *store.Store.
// Depending on this interface instead of the concrete type keeps repos
// decoupled from store lifecycle concerns and lets tests substitute a handle.
type db interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) (*sql.Row, error)
}

// dateFormat is the calendar-date storage format for startDate/endDate.
const dateFormat = "2006-01-02"

// timestampFormat is the storage format for createdAt/spottedAt. The
// nanosecond field is zero-padded to a fixed width, unlike RFC3339Nano, so
// lexicographic TEXT comparison agrees with chronological order and the
// ORDER BY contracts on these columns hold.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the SQLite implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip, generating its ID and creation timestamp,
	// and returns the fully populated record.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by ID.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id string) (domain.Trip, error)

	// List returns all trips ordered by creation timestamp descending
	// (most recent first). The ordering is a contract — history screens
	// rely on it.
	List(ctx context.Context) ([]domain.Trip, error)

	// Update applies the non-nil fields of upd to an existing trip and
	// returns the updated record. Returns domain.ErrValidation when upd is
	// empty and domain.ErrNotFound when the trip does not exist.
	Update(ctx context.Context, id string, upd domain.TripUpdate) (domain.Trip, error)

	// Delete removes a trip by ID without cascading — the service deletes
	// observations first. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// GetActive returns the most-recently-created trip whose completion
	// flag is still false. Returns domain.ErrNotFound when no trip is
	// active.
	GetActive(ctx context.Context) (domain.Trip, error)

	// MarkComplete sets the completion flag. Idempotent — marking an
	// already-complete trip is not an error at this layer.
	MarkComplete(ctx context.Context, id string) error
}

// sqliteTripRepo is the SQLite implementation of TripRepo.
type sqliteTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided store handle.
func NewTripRepo(db db) TripRepo {
	return &sqliteTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *sqliteTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.ID = uuid.New().String()
	trip.CreatedAt = time.Now().UTC()

	const q = `
		INSERT INTO trips (id, name, startDate, endDate, startLocation, destination, isComplete, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	var endDate any
	if trip.EndDate != nil {
		endDate = trip.EndDate.Format(dateFormat)
	}

	_, err := r.db.Exec(ctx, q,
		trip.ID,
		trip.Name,
		trip.StartDate.Format(dateFormat),
		endDate,
		trip.StartLocation,
		trip.Destination,
		boolToInt(trip.IsComplete),
		trip.CreatedAt.Format(timestampFormat),
	)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return trip, nil
}

// GetByID retrieves a trip by primary key.
func (r *sqliteTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	const q = `
		SELECT id, name, startDate, endDate, startLocation, destination, isComplete, createdAt
		FROM trips
		WHERE id = ?`

	row, err := r.db.QueryRow(ctx, q, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by createdAt descending.
func (r *sqliteTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `
		SELECT id, name, startDate, endDate, startLocation, destination, isComplete, createdAt
		FROM trips
		ORDER BY createdAt DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

// Update applies the non-nil fields of upd and returns the updated record.
// The SET clause is built dynamically so untouched columns keep their values.
func (r *sqliteTripRepo) Update(ctx context.Context, id string, upd domain.TripUpdate) (domain.Trip, error) {
	if upd.IsEmpty() {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w: no fields to update", domain.ErrValidation)
	}

	var (
		sets []string
		args []any
	)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.StartDate != nil {
		sets = append(sets, "startDate = ?")
		args = append(args, upd.StartDate.Format(dateFormat))
	}
	if upd.EndDate != nil {
		sets = append(sets, "endDate = ?")
		args = append(args, upd.EndDate.Format(dateFormat))
	}
	if upd.StartLocation != nil {
		sets = append(sets, "startLocation = ?")
		args = append(args, *upd.StartLocation)
	}
	if upd.Destination != nil {
		sets = append(sets, "destination = ?")
		args = append(args, *upd.Destination)
	}
	if upd.IsComplete != nil {
		sets = append(sets, "isComplete = ?")
		args = append(args, boolToInt(*upd.IsComplete))
	}
	args = append(args, id)

	q := "UPDATE trips SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	if affected == 0 {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a trip by primary key.
func (r *sqliteTripRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM trips WHERE id = ?`

	res, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// GetActive returns the newest incomplete trip.
func (r *sqliteTripRepo) GetActive(ctx context.Context) (domain.Trip, error) {
	const q = `
		SELECT id, name, startDate, endDate, startLocation, destination, isComplete, createdAt
		FROM trips
		WHERE isComplete = 0
		ORDER BY createdAt DESC
		LIMIT 1`

	row, err := r.db.QueryRow(ctx, q)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetActive: %w", err)
	}
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetActive: %w", err)
	}
	return result, nil
}

// MarkComplete flips the completion flag to true.
func (r *sqliteTripRepo) MarkComplete(ctx context.Context, id string) error {
	const q = `UPDATE trips SET isComplete = 1 WHERE id = ?`

	res, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.MarkComplete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repo.TripRepo.MarkComplete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("repo.TripRepo.MarkComplete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the TEXT date columns and the nullable endDate.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		startDate  string
		endDate    sql.NullString
		isComplete int
		createdAt  string
	)

	err := s.Scan(&t.ID, &t.Name, &startDate, &endDate, &t.StartLocation, &t.Destination, &isComplete, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.StartDate, err = time.Parse(dateFormat, startDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("parse startDate: %w", err)
	}
	if endDate.Valid {
		ed, err := time.Parse(dateFormat, endDate.String)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("parse endDate: %w", err)
		}
		t.EndDate = &ed
	}
	t.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("parse createdAt: %w", err)
	}
	t.IsComplete = isComplete != 0

	return t, nil
}

// parseTimestamp accepts both RFC 3339 with and without sub-second precision,
// since older rows may have been written by a previous app version.
func parseTimestamp(v string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Parse(time.RFC3339, v)
	}
	return ts, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
