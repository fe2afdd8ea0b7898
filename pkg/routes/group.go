package routes

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/promptchain/pkg/openapi"
)

// Guard wraps a handler that requires elevated credentials.
type Guard func(http.Handler) http.Handler

// Group organizes routes under a common prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
	Schemas  map[string]*openapi.Schema
}

// Register adds all routes from the given groups to the mux, wrapping Admin routes with guard.
// Panics if an Admin route is registered without a guard.
func Register(mux *http.ServeMux, guard Guard, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, guard, "", group)
	}
}

func registerGroup(mux *http.ServeMux, guard Guard, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		pattern := route.Method + " " + fullPrefix + route.Pattern
		if !route.Admin {
			mux.HandleFunc(pattern, route.Handler)
			continue
		}
		if guard == nil {
			panic(fmt.Sprintf("admin route registered without guard: %s", pattern))
		}
		mux.Handle(pattern, guard(route.Handler))
	}
	for _, child := range group.Children {
		registerGroup(mux, guard, fullPrefix, child)
	}
}
