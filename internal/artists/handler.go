package artists

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptchain/pkg/handlers"
	"github.com/JaimeStill/promptchain/pkg/routes"
)

// Handler provides HTTP endpoints for artist operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "artists"),
	}
}

// Routes returns the route group definition for artist endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/artists",
		Schemas: docs.Schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: docs.List},
			{Method: "POST", Pattern: "", Handler: h.Save, Admin: true, OpenAPI: docs.Save},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, Admin: true, OpenAPI: docs.Delete},
		},
	}
}

// List returns artists with optional search and sort query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	artists, err := h.sys.List(r.Context(), FiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, artists)
}

// Save inserts or replaces an artist from a JSON body.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var cmd SaveCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	artist, err := h.sys.Save(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, artist)
}

// Delete removes an artist by id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondSuccess(w)
}
