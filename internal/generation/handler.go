package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/promptchain/pkg/handlers"
	"github.com/JaimeStill/promptchain/pkg/routes"
)

const maxRequestBytes = 1 << 20

// Handler provides HTTP endpoints for image generation.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "generation"),
	}
}

// Routes returns the route group definition for generation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/generate",
		Schemas: docs.Schemas,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Proxy, OpenAPI: docs.Proxy},
			{Method: "POST", Pattern: "/image", Handler: h.Image, OpenAPI: docs.Image},
			{Method: "GET", Pattern: "/presets", Handler: h.Presets, OpenAPI: docs.Presets},
		},
	}
}

// Proxy validates a raw upstream request body, forwards it, and streams back the archive.
func (h *Handler) Proxy(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := ValidateRequest(body); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	archive, err := h.sys.Generate(r.Context(), body)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Length", strconv.Itoa(len(archive)))
	w.WriteHeader(http.StatusOK)
	w.Write(archive)
}

// Image generates from a structured request and returns the extracted image bytes.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req ImageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	img, err := h.sys.GenerateImage(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}

// Presets returns the quality tags and undesired-content presets.
func (h *Handler) Presets(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Presets{
		QualityTags: QualityTags,
		UCPresets:   UCPresets,
	})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidRequest, tooLarge.Limit)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return body, nil
}
