// Package chains implements the prompt chain store: named chains with an
// append-only, gap-free history of versions.
package chains

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptchain/internal/generation"
	"github.com/JaimeStill/promptchain/internal/prompts"
)

// Chain is a named prompt chain with its most recent version.
type Chain struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Tags          []string  `json:"tags"`
	PreviewImage  *string   `json:"previewImage"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	LatestVersion *Version  `json:"latestVersion"`
}

// Version is an immutable snapshot of a chain's prompt configuration.
type Version struct {
	ID             uuid.UUID         `json:"id"`
	ChainID        uuid.UUID         `json:"chainId"`
	Version        int               `json:"version"`
	BasePrompt     string            `json:"basePrompt"`
	NegativePrompt string            `json:"negativePrompt"`
	Modules        []prompts.Module  `json:"modules"`
	Params         generation.Params `json:"params"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// Source returns the compiler input held by the version.
func (v Version) Source() prompts.Source {
	return prompts.Source{BasePrompt: v.BasePrompt, Modules: v.Modules}
}

// CreateCommand carries the data needed to create a chain.
type CreateCommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c CreateCommand) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// UpdateCommand carries a partial chain update. Nil fields are left unchanged.
// An empty PreviewImage clears the preview.
type UpdateCommand struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	PreviewImage *string `json:"previewImage,omitempty"`
}

// UnmarshalJSON treats an explicit null previewImage as a request to clear it.
// Null name or description are ignored.
func (c *UpdateCommand) UnmarshalJSON(data []byte) error {
	type plain UpdateCommand
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["previewImage"]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		empty := ""
		p.PreviewImage = &empty
	}

	*c = UpdateCommand(p)
	return nil
}

// Empty reports whether the command changes nothing.
func (c UpdateCommand) Empty() bool {
	return c.Name == nil && c.Description == nil && c.PreviewImage == nil
}

func (c UpdateCommand) validate() error {
	if c.Name != nil && strings.TrimSpace(*c.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// CreateVersionCommand carries the contents of a new version.
type CreateVersionCommand struct {
	BasePrompt     string            `json:"basePrompt"`
	NegativePrompt string            `json:"negativePrompt"`
	Modules        []prompts.Module  `json:"modules"`
	Params         generation.Params `json:"params"`
}

// PreviewCommand carries an uploaded preview image.
type PreviewCommand struct {
	Data        []byte
	ContentType string
}

// Created is the result of creating a chain.
type Created struct {
	ID uuid.UUID `json:"id"`
}

// VersionCreated is the result of appending a version.
type VersionCreated struct {
	ID      uuid.UUID `json:"id"`
	Version int       `json:"version"`
}
