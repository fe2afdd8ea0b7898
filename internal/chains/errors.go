package chains

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/promptchain/internal/prompts"
)

// Domain errors for chain operations.
var (
	ErrNotFound        = errors.New("chain not found")
	ErrInvalidID       = errors.New("chain id must be a uuid")
	ErrInvalidName     = errors.New("chain name is required")
	ErrInvalidPreview  = errors.New("preview must be a png, jpeg, or webp image")
	ErrPreviewTooLarge = errors.New("preview exceeds upload size limit")
	ErrCorruptRecord   = errors.New("stored chain data is corrupted")
	ErrVersionConflict = errors.New("version number conflict")
)

// MapHTTPStatus maps chain domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidID) || errors.Is(err, ErrInvalidName) || errors.Is(err, ErrInvalidPreview) || errors.Is(err, prompts.ErrInvalidPosition) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrPreviewTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrVersionConflict) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
