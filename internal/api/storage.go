package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/JaimeStill/promptchain/pkg/handlers"
	"github.com/JaimeStill/promptchain/pkg/openapi"
	"github.com/JaimeStill/promptchain/pkg/routes"
	"github.com/JaimeStill/promptchain/pkg/storage"
)

type storageHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newStorageHandler(store storage.System, logger *slog.Logger) *storageHandler {
	return &storageHandler{
		store:  store,
		logger: logger.With("handler", "storage"),
	}
}

func (h *storageHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/storage",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.download, OpenAPI: &openapi.Operation{
				Summary:    "Download a stored image",
				Tags:       []string{"Storage"},
				Parameters: []*openapi.Parameter{openapi.PathParam("key", "Storage key, such as a chain previewImage")},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseBinary("Image bytes", "application/octet-stream"),
					400: openapi.ResponseRef("BadRequest"),
					404: openapi.ResponseRef("NotFound"),
				},
			}},
		},
	}
}

// download streams a stored blob, such as a chain preview image, inline.
func (h *storageHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	result, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", result.ContentType)
	if result.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(result.ContentLength, 10))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", path.Base(key)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, result.Body)
}
