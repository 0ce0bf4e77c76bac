package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// trip or state code does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a business rule forbids the operation in the
// current state: an active trip already exists, or the trip is already
// complete. Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrDuplicateObservation is returned when a (trip, state) pair is added
// twice. It is an expected, recoverable condition — callers treat it as
// "already spotted", not as a system fault.
var ErrDuplicateObservation = errors.New("state already spotted")

// ErrStoreUnavailable is returned when the embedded store has not been opened
// or has been closed. Recoverable by re-opening; fatal to the in-flight call.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrQuery is returned for a malformed statement or an unexpected constraint
// failure not classified as ErrDuplicateObservation. The underlying driver
// message is preserved in the wrapped error text so repos can pattern-match
// constraint names at the boundary.
var ErrQuery = errors.New("query failed")

// FieldError is one per-field validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full list of per-field messages from a failed
// business-rule check. It matches ErrValidation under errors.Is so callers
// can branch on the sentinel without knowing the concrete type.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation error: " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrValidation) succeed for ValidationError values.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
