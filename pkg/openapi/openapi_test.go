package openapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/promptchain/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi version: got %s, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Title != "Test API" || spec.Info.Version != "1.0.0" {
		t.Errorf("info: got %+v", spec.Info)
	}
	if spec.Components == nil || spec.Paths == nil {
		t.Fatal("components and paths should be initialized")
	}

	spec.AddServer("/api")
	spec.SetDescription("chains")
	if len(spec.Servers) != 1 || spec.Servers[0].URL != "/api" {
		t.Errorf("servers: got %+v", spec.Servers)
	}
	if spec.Info.Description != "chains" {
		t.Errorf("description: got %s", spec.Info.Description)
	}
}

func TestRefs(t *testing.T) {
	if ref := openapi.SchemaRef("Chain").Ref; ref != "#/components/schemas/Chain" {
		t.Errorf("schema ref: got %s", ref)
	}
	if ref := openapi.ResponseRef("NotFound").Ref; ref != "#/components/responses/NotFound" {
		t.Errorf("response ref: got %s", ref)
	}
}

func TestResponseBuilders(t *testing.T) {
	single := openapi.ResponseJSON("Chain", "Chain")
	if single.Content["application/json"].Schema.Ref != "#/components/schemas/Chain" {
		t.Errorf("single schema: got %+v", single.Content["application/json"].Schema)
	}

	list := openapi.ResponseJSONArray("Chains", "Chain")
	schema := list.Content["application/json"].Schema
	if schema.Type != "array" || schema.Items.Ref != "#/components/schemas/Chain" {
		t.Errorf("array schema: got %+v", schema)
	}

	bin := openapi.ResponseBinary("Archive", "application/zip")
	if bin.Content["application/zip"].Schema.Format != "binary" {
		t.Errorf("binary schema: got %+v", bin.Content["application/zip"].Schema)
	}

	rb := openapi.RequestBodyJSON("CreateChain", true)
	if !rb.Required || rb.Content["application/json"].Schema.Ref != "#/components/schemas/CreateChain" {
		t.Errorf("request body: got %+v", rb)
	}
}

func TestParams(t *testing.T) {
	tests := []struct {
		name   string
		param  *openapi.Parameter
		in     string
		req    bool
		format string
	}{
		{"path", openapi.PathParam("id", "Artist ID"), "path", true, ""},
		{"uuid path", openapi.UUIDPathParam("id", "Chain ID"), "path", true, "uuid"},
		{"query", openapi.QueryParam("search", "string", "Search", false), "query", false, ""},
		{"header", openapi.HeaderParam("X-Master-Key", "Admin key", true), "header", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.param.In != tt.in {
				t.Errorf("in: got %s, want %s", tt.param.In, tt.in)
			}
			if tt.param.Required != tt.req {
				t.Errorf("required: got %v, want %v", tt.param.Required, tt.req)
			}
			if tt.param.Schema.Format != tt.format {
				t.Errorf("format: got %q, want %q", tt.param.Schema.Format, tt.format)
			}
		})
	}
}

func TestNewComponentsDefaults(t *testing.T) {
	c := openapi.NewComponents()

	if _, ok := c.Schemas["Success"]; !ok {
		t.Error("missing default schema: Success")
	}
	for _, name := range []string{"BadRequest", "Unauthorized", "NotFound", "Conflict"} {
		if _, ok := c.Responses[name]; !ok {
			t.Errorf("missing default response: %s", name)
		}
	}

	c.AddSchemas(map[string]*openapi.Schema{"Chain": {Type: "object"}})
	if _, ok := c.Schemas["Chain"]; !ok {
		t.Error("Chain schema not added")
	}
	if _, ok := c.Schemas["Success"]; !ok {
		t.Error("default Success schema should still exist")
	}
}

func TestServeSpec(t *testing.T) {
	data, err := openapi.MarshalJSON(openapi.NewSpec("Test", "1.0.0"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	rec := httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, httptest.NewRequest("GET", "/openapi.json", nil))

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type: got %s", ct)
	}

	body, _ := io.ReadAll(res.Body)
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("body unmarshal failed: %v", err)
	}
	if parsed["openapi"] != "3.1.0" {
		t.Errorf("openapi: got %v", parsed["openapi"])
	}
}

func TestConfig(t *testing.T) {
	cfg := openapi.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.Title != "Promptchain API" {
		t.Errorf("title: got %s, want Promptchain API", cfg.Title)
	}

	t.Setenv("TEST_TITLE", "Custom API")
	env := &openapi.ConfigEnv{Title: "TEST_TITLE"}
	cfg = openapi.Config{}
	cfg.Finalize(env)
	if cfg.Title != "Custom API" {
		t.Errorf("title: got %s, want Custom API", cfg.Title)
	}

	base := openapi.Config{Title: "Base"}
	base.Merge(&openapi.Config{Title: "Overlay"})
	if base.Title != "Overlay" {
		t.Errorf("merge title: got %s, want Overlay", base.Title)
	}
}
