package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptchain/pkg/handlers"
	"github.com/JaimeStill/promptchain/pkg/middleware"
	"github.com/JaimeStill/promptchain/pkg/openapi"
	"github.com/JaimeStill/promptchain/pkg/routes"
)

var errInvalidKey = errors.New("Invalid Key")

type verifyKeyRequest struct {
	Key string `json:"key"`
}

type authHandler struct {
	adminKey string
	logger   *slog.Logger
}

func newAuthHandler(adminKey string, logger *slog.Logger) *authHandler {
	return &authHandler{
		adminKey: adminKey,
		logger:   logger.With("handler", "auth"),
	}
}

func (h *authHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Schemas: map[string]*openapi.Schema{
			"VerifyKey": {
				Type:       "object",
				Required:   []string{"key"},
				Properties: map[string]*openapi.Schema{"key": {Type: "string"}},
			},
		},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/verify-key", Handler: h.verify, OpenAPI: &openapi.Operation{
				Summary:     "Verify an admin key",
				Tags:        []string{"Auth"},
				RequestBody: openapi.RequestBodyJSON("VerifyKey", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Key accepted", "Success"),
					401: openapi.ResponseRef("Unauthorized"),
				},
			}},
		},
	}
}

// verify lets a client check a candidate admin key before storing it.
func (h *authHandler) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if !middleware.ValidAdminKey(h.adminKey, req.Key) {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errInvalidKey)
		return
	}

	handlers.RespondSuccess(w)
}
