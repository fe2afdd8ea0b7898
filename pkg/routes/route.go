package routes

import (
	"net/http"

	"github.com/JaimeStill/promptchain/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler.
// Admin routes are wrapped with the guard passed to Register.
// OpenAPI, when set, documents the route in the generated spec.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	Admin   bool
	OpenAPI *openapi.Operation
}
