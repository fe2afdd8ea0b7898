package chains

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/promptchain/internal/generation"
	"github.com/JaimeStill/promptchain/internal/prompts"
)

const (
	defaultBasePrompt     = "masterpiece, best quality, {character}"
	defaultNegativePrompt = "lowres, bad anatomy"
)

// DefaultVersion returns the template every new chain starts from as version 1.
// Each call yields a fresh module id.
func DefaultVersion() CreateVersionCommand {
	return CreateVersionCommand{
		BasePrompt:     defaultBasePrompt,
		NegativePrompt: defaultNegativePrompt,
		Modules: []prompts.Module{
			{
				ID:       uuid.NewString(),
				Name:     "Lighting",
				Content:  "cinematic lighting",
				IsActive: true,
			},
		},
		Params: generation.Params{
			Width:   832,
			Height:  1216,
			Steps:   28,
			Scale:   5,
			Sampler: "k_euler_ancestral",
		},
	}
}
