package config

import (
	"fmt"
	"os"
)

const EnvAuthAdminKey = "PROMPTCHAIN_ADMIN_KEY"

// AuthConfig holds the shared admin credential required by mutating routes.
type AuthConfig struct {
	AdminKey string `toml:"admin_key"`
}

// Finalize applies environment variable overrides and validation.
func (c *AuthConfig) Finalize() error {
	if v := os.Getenv(EnvAuthAdminKey); v != "" {
		c.AdminKey = v
	}
	if c.AdminKey == "" {
		return fmt.Errorf("admin_key required")
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.AdminKey != "" {
		c.AdminKey = overlay.AdminKey
	}
}
