package prompts

import "github.com/JaimeStill/promptchain/pkg/openapi"

var docs = struct {
	Compile *openapi.Operation
	Schemas map[string]*openapi.Schema
}{
	Compile: &openapi.Operation{
		Summary:     "Compile a prompt",
		Description: "Joins the base prompt, positioned modules, and subject prompt into one comma-separated prompt.",
		Tags:        []string{"Prompts"},
		RequestBody: openapi.RequestBodyJSON("CompileRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Compiled prompt", "CompileResponse"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Module": {
			Type:     "object",
			Required: []string{"id", "name", "content", "isActive"},
			Properties: map[string]*openapi.Schema{
				"id":       {Type: "string"},
				"name":     {Type: "string"},
				"content":  {Type: "string", Example: "soft rim light"},
				"isActive": {Type: "boolean"},
				"position": {Type: "string", Enum: []any{"pre", "post"}, Description: "Defaults to post when omitted"},
			},
		},
		"CompileRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"basePrompt":        {Type: "string"},
				"modules":           {Type: "array", Items: openapi.SchemaRef("Module")},
				"subjectPrompt":     {Type: "string"},
				"activeModulesOnly": {Type: "boolean", Default: true},
			},
		},
		"CompileResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"prompt": {Type: "string", Example: "masterpiece, soft rim light, 1girl"},
			},
		},
	},
}
