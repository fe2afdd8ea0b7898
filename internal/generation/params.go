// Package generation proxies image generation requests to the upstream
// service and builds its request payload from chain versions.
package generation

// DefaultModel is the upstream model used when none is configured.
const DefaultModel = "nai-diffusion-4-5-full"

// Character places a per-subject caption at a normalized position in the image.
type Character struct {
	Prompt string  `json:"prompt"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Params are the generation settings stored with each chain version.
// Nil optional fields fall back to upstream defaults when a payload is built.
type Params struct {
	Width         int         `json:"width"`
	Height        int         `json:"height"`
	Steps         int         `json:"steps"`
	Scale         float64     `json:"scale"`
	Sampler       string      `json:"sampler"`
	Seed          *int64      `json:"seed,omitempty"`
	QualityToggle *bool       `json:"qualityToggle,omitempty"`
	UCPreset      *int        `json:"ucPreset,omitempty"`
	Characters    []Character `json:"characters,omitempty"`
}
