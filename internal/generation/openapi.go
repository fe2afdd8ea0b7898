package generation

import "github.com/JaimeStill/promptchain/pkg/openapi"

var docs = struct {
	Proxy   *openapi.Operation
	Image   *openapi.Operation
	Presets *openapi.Operation
	Schemas map[string]*openapi.Schema
}{
	Proxy: &openapi.Operation{
		Summary:     "Proxy a raw generation request",
		Description: "Validates the upstream request body and returns the upstream zip archive unchanged.",
		Tags:        []string{"Generation"},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"application/json": {Schema: &openapi.Schema{Type: "object"}},
			},
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Upstream archive", "application/zip"),
			400: openapi.ResponseRef("BadRequest"),
			502: {Description: "Upstream failure"},
			503: {Description: "Upstream credentials not configured"},
		},
	},
	Image: &openapi.Operation{
		Summary:     "Generate an image",
		Description: "Builds the upstream payload from prompt and params and returns the first image in the archive.",
		Tags:        []string{"Generation"},
		RequestBody: openapi.RequestBodyJSON("ImageRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Generated image", "image/png"),
			400: openapi.ResponseRef("BadRequest"),
			502: {Description: "Upstream failure"},
			503: {Description: "Upstream credentials not configured"},
		},
	},
	Presets: &openapi.Operation{
		Summary: "List quality tags and negative prompt presets",
		Tags:    []string{"Generation"},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Presets", "Presets"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Character": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"prompt": {Type: "string"},
				"x":      {Type: "number"},
				"y":      {Type: "number"},
			},
		},
		"Params": {
			Type:     "object",
			Required: []string{"width", "height", "steps", "scale", "sampler"},
			Properties: map[string]*openapi.Schema{
				"width":         {Type: "integer", Example: 832},
				"height":        {Type: "integer", Example: 1216},
				"steps":         {Type: "integer", Example: 28},
				"scale":         {Type: "number", Example: 5},
				"sampler":       {Type: "string", Example: "k_euler_ancestral"},
				"seed":          {Type: "integer"},
				"qualityToggle": {Type: "boolean"},
				"ucPreset":      {Type: "integer", Enum: []any{0, 1, 2, 3}},
				"characters":    {Type: "array", Items: openapi.SchemaRef("Character")},
			},
		},
		"ImageRequest": {
			Type:     "object",
			Required: []string{"prompt", "params"},
			Properties: map[string]*openapi.Schema{
				"prompt":         {Type: "string"},
				"negativePrompt": {Type: "string"},
				"params":         openapi.SchemaRef("Params"),
			},
		},
		"Presets": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"qualityTags": {Type: "string"},
				"ucPresets":   {Type: "object", Description: "Negative prompt text keyed by preset number"},
			},
		},
	},
}
