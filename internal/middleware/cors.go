package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware allowing cross-origin calls from the
// origins in allowedOrigins (full scheme + host, no trailing slash — in dev
// this is the Vite server from CORS_ORIGINS). The method list carries PATCH
// because trip edits are partial updates, and DELETE for trip removal; both
// trigger browser preflights, as does the application/json Content-Type.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
