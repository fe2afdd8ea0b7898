package inspirations

import "github.com/JaimeStill/promptchain/pkg/openapi"

var docs = struct {
	List    *openapi.Operation
	Save    *openapi.Operation
	Delete  *openapi.Operation
	Schemas map[string]*openapi.Schema
}{
	List: &openapi.Operation{
		Summary: "List inspirations",
		Tags:    []string{"Inspirations"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("search", "string", "Case-insensitive title or prompt filter", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending. Example: title", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Inspirations, newest first", "Inspiration"),
		},
	},
	Save: &openapi.Operation{
		Summary:     "Save an inspiration",
		Description: "Inserts the inspiration, or replaces the record with the same id.",
		Tags:        []string{"Inspirations"},
		RequestBody: openapi.RequestBodyJSON("Inspiration", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Saved inspiration", "Inspiration"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete an inspiration",
		Tags:       []string{"Inspirations"},
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Inspiration ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Deleted", "Success"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Inspiration": {
			Type:     "object",
			Required: []string{"title"},
			Properties: map[string]*openapi.Schema{
				"id":        {Type: "string", Description: "Generated when omitted"},
				"title":     {Type: "string"},
				"imageUrl":  {Type: "string"},
				"prompt":    {Type: "string"},
				"createdAt": {Description: "RFC3339 timestamp or Unix milliseconds. Set to the save time when omitted"},
			},
		},
	},
}
