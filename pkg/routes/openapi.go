package routes

import (
	"maps"
	"strings"

	"github.com/JaimeStill/promptchain/pkg/middleware"
	"github.com/JaimeStill/promptchain/pkg/openapi"
)

// Describe adds every documented route and group schema to spec.
// Routes without an OpenAPI operation are left out.
func Describe(spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		describeGroup(spec, "", group)
	}
}

func describeGroup(spec *openapi.Spec, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	spec.Components.AddSchemas(group.Schemas)

	for _, route := range group.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := *route.OpenAPI
		if route.Admin {
			op.Parameters = append(
				[]*openapi.Parameter{openapi.HeaderParam(middleware.AdminKeyHeader, "Admin key", true)},
				op.Parameters...,
			)
			op.Responses = maps.Clone(op.Responses)
			if op.Responses == nil {
				op.Responses = map[int]*openapi.Response{}
			}
			if _, ok := op.Responses[401]; !ok {
				op.Responses[401] = openapi.ResponseRef("Unauthorized")
			}
		}

		path := specPath(fullPrefix + route.Pattern)
		item, ok := spec.Paths[path]
		if !ok {
			item = &openapi.PathItem{}
			spec.Paths[path] = item
		}

		switch route.Method {
		case "GET":
			item.Get = &op
		case "POST":
			item.Post = &op
		case "PUT":
			item.Put = &op
		case "DELETE":
			item.Delete = &op
		}
	}

	for _, child := range group.Children {
		describeGroup(spec, fullPrefix, child)
	}
}

// specPath converts a ServeMux pattern to an OpenAPI path template.
func specPath(pattern string) string {
	if pattern == "" {
		return "/"
	}
	return strings.ReplaceAll(pattern, "...}", "}")
}
