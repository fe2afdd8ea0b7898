package artists

import (
	"errors"
	"net/http"
)

// Domain errors for artist operations.
var (
	ErrNotFound    = errors.New("artist not found")
	ErrDuplicate   = errors.New("artist already exists")
	ErrInvalidName = errors.New("artist name is required")
)

// MapHTTPStatus maps artist domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidName) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
