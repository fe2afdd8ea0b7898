package generation

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors for generation operations.
var (
	ErrInvalidRequest  = errors.New("invalid generation request")
	ErrEmptyArchive    = errors.New("no image found in response")
	ErrArchiveTooLarge = errors.New("generation response exceeds size limit")
	ErrInvalidArchive  = errors.New("generation response is not a valid archive")
	ErrNotConfigured   = errors.New("generation api key not configured")
)

// UpstreamError relays a non-success response from the generation service.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation upstream error (status %d): %s", e.Status, e.Message)
}

// MapHTTPStatus maps generation errors to HTTP status codes.
// Upstream failures keep the upstream status.
func MapHTTPStatus(err error) int {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		if upstream.Status >= 400 && upstream.Status < 600 {
			return upstream.Status
		}
		return http.StatusBadGateway
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrEmptyArchive) || errors.Is(err, ErrArchiveTooLarge) || errors.Is(err, ErrInvalidArchive) {
		return http.StatusBadGateway
	}
	if errors.Is(err, ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
