package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/promptchain/internal/prompts"
	"github.com/JaimeStill/promptchain/pkg/handlers"
	"github.com/JaimeStill/promptchain/pkg/middleware"
	"github.com/JaimeStill/promptchain/pkg/openapi"
	"github.com/JaimeStill/promptchain/pkg/routes"
)

var errRouteNotFound = errors.New("not found")

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) error {
	groups := []routes.Group{
		newAuthHandler(runtime.AdminKey, runtime.Logger).routes(),
		prompts.NewHandler(runtime.Logger).Routes(),
		domain.Chains.Handler(runtime.MaxUploadSize).Routes(),
		domain.Artists.Handler().Routes(),
		domain.Inspirations.Handler().Routes(),
		domain.Generation.Handler().Routes(),
		newStorageHandler(runtime.Storage, runtime.Logger).routes(),
	}

	guard := middleware.AdminKey(runtime.AdminKey)
	routes.Register(mux, guard, groups...)

	spec, err := buildSpec(runtime, groups)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	mux.Handle("/", notFound(guard))

	return nil
}

// notFound answers unmatched routes. PUT and DELETE always require the admin
// key, so they pass the guard before learning the route does not exist.
func notFound(guard func(http.Handler) http.Handler) http.Handler {
	missing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusNotFound, map[string]string{"error": errRouteNotFound.Error()})
	})
	guarded := guard(missing)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut, http.MethodDelete:
			guarded.ServeHTTP(w, r)
		default:
			missing.ServeHTTP(w, r)
		}
	})
}

func buildSpec(runtime *Runtime, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(runtime.OpenAPI.Title, runtime.Version)
	spec.SetDescription(runtime.OpenAPI.Description)
	spec.AddServer(runtime.BasePath)

	routes.Describe(spec, groups...)

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
