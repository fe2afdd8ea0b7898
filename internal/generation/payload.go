package generation

// Payload is the upstream generate-image request body.
type Payload struct {
	Input      string     `json:"input"`
	Model      string     `json:"model"`
	Action     string     `json:"action"`
	Parameters Parameters `json:"parameters"`
}

// Parameters carries the sampler settings and v4 caption structure.
type Parameters struct {
	ParamsVersion int     `json:"params_version"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Scale         float64 `json:"scale"`
	Sampler       string  `json:"sampler"`
	Steps         int     `json:"steps"`
	NSamples      int     `json:"n_samples"`

	QualityToggle bool `json:"qualityToggle"`
	UCPreset      int  `json:"ucPreset"`

	SM                  bool    `json:"sm"`
	SMDyn               bool    `json:"sm_dyn"`
	DynamicThresholding bool    `json:"dynamic_thresholding"`
	ControlnetStrength  float64 `json:"controlnet_strength"`
	Legacy              bool    `json:"legacy"`
	AddOriginalImage    bool    `json:"add_original_image"`
	UncondScale         float64 `json:"uncond_scale"`
	CFGRescale          float64 `json:"cfg_rescale"`
	NoiseSchedule       string  `json:"noise_schedule"`
	NegativePrompt      string  `json:"negative_prompt"`
	Seed                int64   `json:"seed"`

	V4Prompt         V4Prompt         `json:"v4_prompt"`
	V4NegativePrompt V4NegativePrompt `json:"v4_negative_prompt"`

	DeliberateEulerAncestralBug bool `json:"deliberate_euler_ancestral_bug"`
	PreferBrownian              bool `json:"prefer_brownian"`
}

// V4Prompt is the positive caption block.
type V4Prompt struct {
	Caption   Caption `json:"caption"`
	UseCoords bool    `json:"use_coords"`
	UseOrder  bool    `json:"use_order"`
}

// V4NegativePrompt is the negative caption block.
type V4NegativePrompt struct {
	Caption  Caption `json:"caption"`
	LegacyUC bool    `json:"legacy_uc"`
}

// Caption holds the global caption and any per-character captions.
type Caption struct {
	BaseCaption  string        `json:"base_caption"`
	CharCaptions []CharCaption `json:"char_captions"`
}

// CharCaption positions a character caption at one or more centers.
type CharCaption struct {
	CharCaption string   `json:"char_caption"`
	Centers     []Center `json:"centers"`
}

// Center is a normalized image coordinate.
type Center struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BuildPayload assembles the upstream request for a compiled prompt.
// A nil seed becomes 0, which the upstream treats as random. Quality toggle
// defaults to true and the undesired-content preset to 0. Coordinates are
// enabled only when characters are present.
func BuildPayload(prompt, negative string, params Params, model string) Payload {
	if model == "" {
		model = DefaultModel
	}

	var seed int64
	if params.Seed != nil {
		seed = *params.Seed
	}

	qualityToggle := true
	if params.QualityToggle != nil {
		qualityToggle = *params.QualityToggle
	}

	var ucPreset int
	if params.UCPreset != nil {
		ucPreset = *params.UCPreset
	}

	charCaptions := make([]CharCaption, 0, len(params.Characters))
	for _, c := range params.Characters {
		charCaptions = append(charCaptions, CharCaption{
			CharCaption: c.Prompt,
			Centers:     []Center{{X: c.X, Y: c.Y}},
		})
	}

	return Payload{
		Input:  prompt,
		Model:  model,
		Action: "generate",
		Parameters: Parameters{
			ParamsVersion: 3,
			Width:         params.Width,
			Height:        params.Height,
			Scale:         params.Scale,
			Sampler:       params.Sampler,
			Steps:         params.Steps,
			NSamples:      1,

			QualityToggle: qualityToggle,
			UCPreset:      ucPreset,

			ControlnetStrength: 1,
			AddOriginalImage:   true,
			UncondScale:        1,
			NoiseSchedule:      "karras",
			NegativePrompt:     negative,
			Seed:               seed,

			V4Prompt: V4Prompt{
				Caption: Caption{
					BaseCaption:  prompt,
					CharCaptions: charCaptions,
				},
				UseCoords: len(charCaptions) > 0,
				UseOrder:  true,
			},
			V4NegativePrompt: V4NegativePrompt{
				Caption: Caption{
					BaseCaption:  negative,
					CharCaptions: []CharCaption{},
				},
			},

			PreferBrownian: true,
		},
	}
}
