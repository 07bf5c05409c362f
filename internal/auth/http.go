// ABOUTME: HTTP middleware for JWT authentication on API endpoints
// ABOUTME: Extracts the bearer token from the Authorization header and adds the identity to context

package auth

import (
	"net/http"
	"strings"
)

// Auth gate response messages. These are part of the wire contract and
// must not drift.
const (
	msgAccessDenied  = "access denied"
	msgInvalidFormat = "invalid token format"
	msgInvalidToken  = "invalid token"
)

// Middleware creates an HTTP middleware that extracts and verifies bearer
// tokens. The Authorization header must be exactly "Bearer <token>": two
// parts, one space. On success the verified Identity is attached to the
// request context; every failure is a 401 with a fixed message.
func Middleware(codec TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeUnauthorized(w, msgAccessDenied)
				return
			}

			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeUnauthorized(w, msgInvalidFormat)
				return
			}

			id, err := codec.Verify(parts[1])
			if err != nil {
				writeUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// writeUnauthorized writes a 401 JSON error body.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"` + message + `"}` + "\n"))
}
