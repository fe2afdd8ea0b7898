package chains

import "github.com/JaimeStill/promptchain/pkg/openapi"

var chainID = openapi.UUIDPathParam("id", "Chain ID")

var docs = struct {
	List          *openapi.Operation
	Find          *openapi.Operation
	Versions      *openapi.Operation
	Create        *openapi.Operation
	Update        *openapi.Operation
	Delete        *openapi.Operation
	CreateVersion *openapi.Operation
	SetPreview    *openapi.Operation
	Schemas       map[string]*openapi.Schema
}{
	List: &openapi.Operation{
		Summary:     "List chains",
		Description: "Returns every chain with its highest-numbered version, most recently updated first.",
		Tags:        []string{"Chains"},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Chains", "Chain"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find a chain",
		Tags:       []string{"Chains"},
		Parameters: []*openapi.Parameter{chainID},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Chain", "Chain"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Versions: &openapi.Operation{
		Summary:    "List chain versions",
		Tags:       []string{"Chains"},
		Parameters: []*openapi.Parameter{chainID},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Versions in ascending order", "Version"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create a chain",
		Description: "Creates the chain together with version 1 built from the default template.",
		Tags:        []string{"Chains"},
		RequestBody: openapi.RequestBodyJSON("CreateChain", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Created chain id", "Created"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update chain metadata",
		Description: "Only fields present in the body change. A null previewImage clears the preview.",
		Tags:        []string{"Chains"},
		Parameters:  []*openapi.Parameter{chainID},
		RequestBody: openapi.RequestBodyJSON("UpdateChain", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated", "Success"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete a chain and its versions",
		Tags:       []string{"Chains"},
		Parameters: []*openapi.Parameter{chainID},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Deleted", "Success"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	CreateVersion: &openapi.Operation{
		Summary:     "Append a version",
		Description: "Assigns the next version number for the chain and bumps the chain's updatedAt.",
		Tags:        []string{"Chains"},
		Parameters:  []*openapi.Parameter{chainID},
		RequestBody: openapi.RequestBodyJSON("CreateVersion", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Created version", "VersionCreated"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	SetPreview: &openapi.Operation{
		Summary:    "Upload a preview image",
		Tags:       []string{"Chains"},
		Parameters: []*openapi.Parameter{chainID},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type:     "object",
						Required: []string{"file"},
						Properties: map[string]*openapi.Schema{
							"file": {Type: "string", Format: "binary"},
						},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Chain with new preview", "Chain"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: {Description: "Preview too large"},
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Version": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "string", Format: "uuid"},
				"chainId":        {Type: "string", Format: "uuid"},
				"version":        {Type: "integer", Example: 1},
				"basePrompt":     {Type: "string"},
				"negativePrompt": {Type: "string"},
				"modules":        {Type: "array", Items: openapi.SchemaRef("Module")},
				"params":         openapi.SchemaRef("Params"),
				"createdAt":      {Type: "string", Format: "date-time"},
			},
		},
		"Chain": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string", Format: "uuid"},
				"name":          {Type: "string"},
				"description":   {Type: "string"},
				"tags":          {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"previewImage":  {Type: "string", Description: "Storage key of the preview image, or null"},
				"createdAt":     {Type: "string", Format: "date-time"},
				"updatedAt":     {Type: "string", Format: "date-time"},
				"latestVersion": openapi.SchemaRef("Version"),
			},
		},
		"CreateChain": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string"},
				"description": {Type: "string"},
			},
		},
		"UpdateChain": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":         {Type: "string"},
				"description":  {Type: "string"},
				"previewImage": {Type: "string"},
			},
		},
		"CreateVersion": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"basePrompt":     {Type: "string"},
				"negativePrompt": {Type: "string"},
				"modules":        {Type: "array", Items: openapi.SchemaRef("Module")},
				"params":         openapi.SchemaRef("Params"),
			},
		},
		"Created": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id": {Type: "string", Format: "uuid"},
			},
		},
		"VersionCreated": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":      {Type: "string", Format: "uuid"},
				"version": {Type: "integer"},
			},
		},
	},
}
