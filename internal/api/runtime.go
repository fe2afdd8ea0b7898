package api

import (
	"github.com/JaimeStill/promptchain/internal/config"
	"github.com/JaimeStill/promptchain/internal/generation"
	"github.com/JaimeStill/promptchain/internal/infrastructure"
	"github.com/JaimeStill/promptchain/pkg/openapi"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	AdminKey      string
	BasePath      string
	MaxUploadSize int64
	Generation    *generation.Config
	OpenAPI       openapi.Config
	Version       string
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		AdminKey:      cfg.Auth.AdminKey,
		BasePath:      cfg.API.BasePath,
		MaxUploadSize: cfg.API.MaxUploadSizeBytes(),
		Generation:    &cfg.Generation,
		OpenAPI:       cfg.API.OpenAPI,
		Version:       cfg.Version,
	}
}
