package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/d3nnyP/state-game-app/internal/domain"
	"github.com/d3nnyP/state-game-app/internal/service"
)

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var input service.CreateTripInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	created, err := s.trips.CreateTrip(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /api/trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.ListTrips(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /api/trips/{tripID}. It returns the composite trip
// state view, not the bare trip row.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	state, err := s.trips.GetTripState(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// GetActiveTrip handles GET /api/trips/active.
// Responds 404 when no trip is currently active.
func (s *Server) GetActiveTrip(w http.ResponseWriter, r *http.Request) {
	state, err := s.trips.GetActiveTripState(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// updateTripRequest is the PATCH body. All fields are optional; dates arrive
// as YYYY-MM-DD strings.
type updateTripRequest struct {
	Name          *string `json:"name"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	StartLocation *string `json:"start_location"`
	Destination   *string `json:"destination"`
}

// UpdateTrip handles PATCH /api/trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var req updateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	upd := domain.TripUpdate{
		Name:          req.Name,
		StartLocation: req.StartLocation,
		Destination:   req.Destination,
	}
	if req.StartDate != nil {
		sd, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			writeBadRequest(w, "start_date must be a valid date (YYYY-MM-DD)")
			return
		}
		upd.StartDate = &sd
	}
	if req.EndDate != nil {
		ed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			writeBadRequest(w, "end_date must be a valid date (YYYY-MM-DD)")
			return
		}
		upd.EndDate = &ed
	}

	updated, err := s.trips.UpdateTrip(r.Context(), chi.URLParam(r, "tripID"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /api/trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.DeleteTrip(r.Context(), chi.URLParam(r, "tripID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteTrip handles POST /api/trips/{tripID}/complete.
func (s *Server) CompleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	if err := s.trips.CompleteTrip(r.Context(), tripID); err != nil {
		writeError(w, err)
		return
	}

	state, err := s.trips.GetTripState(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// toggleResponse is the body returned by ToggleState. Spotted is the state's
// new status after the toggle.
type toggleResponse struct {
	StateCode string `json:"state_code"`
	Spotted   bool   `json:"spotted"`
}

// ToggleState handles POST /api/trips/{tripID}/states/{stateCode}/toggle.
func (s *Server) ToggleState(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")
	stateCode := chi.URLParam(r, "stateCode")

	spotted, err := s.trips.ToggleState(r.Context(), tripID, stateCode)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toggleResponse{StateCode: stateCode, Spotted: spotted})
}
