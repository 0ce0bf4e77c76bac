// Package middleware holds the HTTP middleware the State Plate Game API
// composes around its router: request logging, CORS for the web frontend,
// and a request body size cap.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewSlogLogger returns a middleware emitting one structured log line per
// request: method, path, status, duration in milliseconds, and the request ID.
// The line goes through the provided logger, so the composition root decides
// the handler and level.
//
// Must sit after chimiddleware.RequestID in the chain, or request_id logs empty.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// The wrapped writer records the status code the downstream
			// handler sets; plain http.ResponseWriter gives no way to read
			// it back.
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}
