// Package handler implements the HTTP handlers for the State Plate Game API.
// Handlers are methods on Server and call only the trip and completion
// services — never the repositories or the store handle directly. Methods are
// split into files by resource (trip.go, stats.go, health.go) but all share
// the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/d3nnyP/state-game-app/internal/domain"
	"github.com/d3nnyP/state-game-app/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	CreateTrip(ctx context.Context, input service.CreateTripInput) (domain.Trip, error)
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	UpdateTrip(ctx context.Context, tripID string, upd domain.TripUpdate) (domain.Trip, error)
	ToggleState(ctx context.Context, tripID, stateCode string) (bool, error)
	CompleteTrip(ctx context.Context, tripID string) error
	DeleteTrip(ctx context.Context, tripID string) error
	GetTripState(ctx context.Context, tripID string) (domain.TripState, error)
	GetActiveTripState(ctx context.Context) (domain.TripState, error)
}

// CompletionServicer defines the analytics operations the stats handlers
// depend on.
type CompletionServicer interface {
	Statistics(ctx context.Context) (domain.CompletionStats, error)
	StateStats(ctx context.Context) (domain.AggregateStats, error)
	Milestones(ctx context.Context) ([]domain.Milestone, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips      TripServicer
	completion CompletionServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, completion CompletionServicer) *Server {
	return &Server{trips: trips, completion: completion}
}

// Routes returns the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)
			r.Get("/active", s.GetActiveTrip)
			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Patch("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				r.Post("/complete", s.CompleteTrip)
				r.Post("/states/{stateCode}/toggle", s.ToggleState)
			})
		})
		r.Get("/stats", s.GetStatistics)
		r.Get("/stats/states", s.GetStateStats)
		r.Get("/milestones", s.GetMilestones)
	})

	return r
}

// respondJSON writes v as a JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
