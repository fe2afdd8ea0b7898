package artists

import "github.com/JaimeStill/promptchain/pkg/openapi"

var docs = struct {
	List    *openapi.Operation
	Save    *openapi.Operation
	Delete  *openapi.Operation
	Schemas map[string]*openapi.Schema
}{
	List: &openapi.Operation{
		Summary: "List artists",
		Tags:    []string{"Artists"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("search", "string", "Case-insensitive name filter", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending. Example: -name", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Artists ordered by name", "Artist"),
		},
	},
	Save: &openapi.Operation{
		Summary:     "Save an artist",
		Description: "Inserts the artist, or replaces the record with the same id.",
		Tags:        []string{"Artists"},
		RequestBody: openapi.RequestBodyJSON("Artist", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Saved artist", "Artist"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete an artist",
		Tags:       []string{"Artists"},
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Artist ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Deleted", "Success"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Artist": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"id":       {Type: "string", Description: "Generated when omitted"},
				"name":     {Type: "string", Example: "wlop"},
				"imageUrl": {Type: "string"},
			},
		},
	},
}
