package prompts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptchain/pkg/handlers"
	"github.com/JaimeStill/promptchain/pkg/routes"
)

// CompileRequest is the body of the compile endpoint.
// ActiveModulesOnly defaults to true when omitted.
type CompileRequest struct {
	BasePrompt        string   `json:"basePrompt"`
	Modules           []Module `json:"modules"`
	SubjectPrompt     string   `json:"subjectPrompt"`
	ActiveModulesOnly *bool    `json:"activeModulesOnly,omitempty"`
}

// CompileResponse carries the compiled prompt text.
type CompileResponse struct {
	Prompt string `json:"prompt"`
}

// Handler provides HTTP endpoints for prompt compilation.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a Handler with the given logger.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger.With("handler", "prompts")}
}

// Routes returns the route group definition for prompt endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/prompts",
		Schemas: docs.Schemas,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/compile", Handler: h.Compile, OpenAPI: docs.Compile},
		},
	}
}

// Compile returns the compiled prompt for the given base prompt, modules, and subject.
func (h *Handler) Compile(w http.ResponseWriter, r *http.Request) {
	var req CompileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	if err := ValidateModules(req.Modules); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	activeOnly := true
	if req.ActiveModulesOnly != nil {
		activeOnly = *req.ActiveModulesOnly
	}

	src := Source{BasePrompt: req.BasePrompt, Modules: req.Modules}
	handlers.RespondJSON(w, http.StatusOK, CompileResponse{
		Prompt: Compile(src, req.SubjectPrompt, activeOnly),
	})
}
