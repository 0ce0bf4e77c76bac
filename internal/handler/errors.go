package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/d3nnyP/state-game-app/internal/domain"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// writeError maps a domain error onto the HTTP surface. Unclassified errors
// are logged and reported as a generic 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "validation_error", Message: "validation failed", Fields: verr.Fields},
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: "resource not found"},
		})
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "validation_error", Message: err.Error()},
		})
	case errors.Is(err, domain.ErrDuplicateObservation):
		respondJSON(w, http.StatusConflict, errorResponse{
			Error: errorDetail{Code: "already_spotted", Message: "state already spotted for this trip"},
		})
	case errors.Is(err, domain.ErrConflict):
		respondJSON(w, http.StatusConflict, errorResponse{
			Error: errorDetail{Code: "conflict", Message: err.Error()},
		})
	case errors.Is(err, domain.ErrStoreUnavailable):
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error: errorDetail{Code: "store_unavailable", Message: "database is unavailable"},
		})
	default:
		slog.Error("unhandled error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}

// writeBadRequest rejects a request before it reaches the service layer
// (missing or malformed body).
func writeBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorDetail{Code: "bad_request", Message: message},
	})
}
