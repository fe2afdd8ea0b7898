package inspirations

import (
	"errors"
	"net/http"
)

// Domain errors for inspiration operations.
var (
	ErrNotFound     = errors.New("inspiration not found")
	ErrDuplicate    = errors.New("inspiration already exists")
	ErrInvalidTitle = errors.New("inspiration title is required")
)

// MapHTTPStatus maps inspiration domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTitle):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
