package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
)

// AdminKeyHeader carries the admin credential on protected requests.
const AdminKeyHeader = "X-Master-Key"

// ErrUnauthorized is returned when the admin credential is missing or incorrect.
var ErrUnauthorized = errors.New("unauthorized")

// ValidAdminKey reports whether candidate matches the configured key.
// An empty configured key never matches.
func ValidAdminKey(configured, candidate string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(candidate)) == 1
}

// AdminKey returns middleware that rejects requests lacking the configured key in the
// X-Master-Key header. Rejection happens before the wrapped handler runs.
func AdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ValidAdminKey(key, r.Header.Get(AdminKeyHeader)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": ErrUnauthorized.Error()})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
