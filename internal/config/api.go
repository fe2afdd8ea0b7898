package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/promptchain/pkg/formatting"
	"github.com/JaimeStill/promptchain/pkg/middleware"
	"github.com/JaimeStill/promptchain/pkg/openapi"
)

const (
	EnvAPIBasePath      = "PROMPTCHAIN_API_BASE_PATH"
	EnvAPIMaxUploadSize = "PROMPTCHAIN_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PROMPTCHAIN_CORS_ENABLED",
	Origins:          "PROMPTCHAIN_CORS_ORIGINS",
	AllowedMethods:   "PROMPTCHAIN_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PROMPTCHAIN_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PROMPTCHAIN_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PROMPTCHAIN_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "PROMPTCHAIN_OPENAPI_TITLE",
	Description: "PROMPTCHAIN_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, upload, and OpenAPI settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes returns the preview upload limit in bytes.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}
