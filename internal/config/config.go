// Package config loads the service configuration from TOML files and
// PROMPTCHAIN_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/promptchain/internal/generation"
	"github.com/JaimeStill/promptchain/pkg/database"
	"github.com/JaimeStill/promptchain/pkg/storage"
	"github.com/JaimeStill/promptchain/pkg/web"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPromptchainEnv             = "PROMPTCHAIN_ENV"
	EnvPromptchainShutdownTimeout = "PROMPTCHAIN_SHUTDOWN_TIMEOUT"
	EnvPromptchainVersion         = "PROMPTCHAIN_VERSION"
	EnvWebDistDir                 = "PROMPTCHAIN_WEB_DIST_DIR"
)

// DatabaseEnv names the PROMPTCHAIN_DB_* variables shared by the server and the migrator.
var DatabaseEnv = &database.Env{
	Host:            "PROMPTCHAIN_DB_HOST",
	Port:            "PROMPTCHAIN_DB_PORT",
	Name:            "PROMPTCHAIN_DB_NAME",
	User:            "PROMPTCHAIN_DB_USER",
	Password:        "PROMPTCHAIN_DB_PASSWORD",
	SSLMode:         "PROMPTCHAIN_DB_SSL_MODE",
	MaxOpenConns:    "PROMPTCHAIN_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PROMPTCHAIN_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PROMPTCHAIN_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PROMPTCHAIN_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "PROMPTCHAIN_STORAGE_CONTAINER_NAME",
	ConnectionString: "PROMPTCHAIN_STORAGE_CONNECTION_STRING",
	AccountURL:       "PROMPTCHAIN_STORAGE_ACCOUNT_URL",
}

var generationEnv = &generation.Env{
	BaseURL:        "PROMPTCHAIN_GENERATION_BASE_URL",
	Path:           "PROMPTCHAIN_GENERATION_PATH",
	APIKey:         "PROMPTCHAIN_GENERATION_API_KEY",
	Model:          "PROMPTCHAIN_GENERATION_MODEL",
	Timeout:        "PROMPTCHAIN_GENERATION_TIMEOUT",
	MaxArchiveSize: "PROMPTCHAIN_GENERATION_MAX_ARCHIVE_SIZE",
}

// Config is the root configuration for the promptchain service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Storage         storage.Config    `toml:"storage"`
	API             APIConfig         `toml:"api"`
	Auth            AuthConfig        `toml:"auth"`
	Generation      generation.Config `toml:"generation"`
	Web             web.Config        `toml:"web"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the PROMPTCHAIN_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPromptchainEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Auth.Merge(&overlay.Auth)
	c.Generation.Merge(&overlay.Generation)
	c.Web.Merge(&overlay.Web)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(DatabaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Auth.Finalize(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Generation.Finalize(generationEnv); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPromptchainShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPromptchainVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvWebDistDir); v != "" {
		c.Web.DistDir = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPromptchainEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
