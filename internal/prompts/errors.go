package prompts

import (
	"errors"
	"net/http"
)

// Domain errors for prompt compilation.
var (
	ErrInvalidPosition = errors.New("module position must be pre, post, or unset")
	ErrInvalidRequest  = errors.New("invalid compile request")
)

// MapHTTPStatus maps prompt domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidPosition) || errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
