package generation

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/JaimeStill/promptchain/pkg/formatting"
)

// Config holds the upstream image generation service parameters.
type Config struct {
	BaseURL        string `toml:"base_url"`
	Path           string `toml:"path"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	Timeout        string `toml:"timeout"`
	MaxArchiveSize string `toml:"max_archive_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	BaseURL        string
	Path           string
	APIKey         string
	Model          string
	Timeout        string
	MaxArchiveSize string
}

// Endpoint returns the full upstream generation URL.
func (c *Config) Endpoint() string {
	return c.BaseURL + c.Path
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MaxArchiveBytes returns MaxArchiveSize as a byte count.
func (c *Config) MaxArchiveBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxArchiveSize)
	return n
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxArchiveSize != "" {
		c.MaxArchiveSize = overlay.MaxArchiveSize
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://image.novelai.net"
	}
	if c.Path == "" {
		c.Path = "/ai/generate-image"
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout == "" {
		c.Timeout = "2m"
	}
	if c.MaxArchiveSize == "" {
		c.MaxArchiveSize = "50MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.Path != "" {
		if v := os.Getenv(env.Path); v != "" {
			c.Path = v
		}
	}
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.Model != "" {
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MaxArchiveSize != "" {
		if v := os.Getenv(env.MaxArchiveSize); v != "" {
			c.MaxArchiveSize = v
		}
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url: %q", c.BaseURL)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	n, err := formatting.ParseBytes(c.MaxArchiveSize)
	if err != nil {
		return fmt.Errorf("invalid max_archive_size: %w", err)
	}
	if n <= 0 {
		return fmt.Errorf("max_archive_size must be positive")
	}
	return nil
}
