package generation

// QualityTags is appended upstream when the quality toggle is enabled.
const QualityTags = ", very aesthetic, masterpiece, no text"

// UCPresets maps undesired-content preset ids to their expanded negative text.
// 0 heavy, 1 light, 2 furry, 3 human.
var UCPresets = map[int]string{
	0: "nsfw, lowres, artistic error, film grain, scan artifacts, worst quality, bad quality, jpeg artifacts, very displeasing, chromatic aberration, dithering, halftone, screentone, multiple views, logo, too many watermarks, negative space, blank page, ",
	1: "nsfw, lowres, artistic error, scan artifacts, worst quality, bad quality, jpeg artifacts, multiple views, very displeasing, too many watermarks, negative space, blank page, ",
	2: "nsfw, {worst quality}, distracting watermark, unfinished, bad quality, {widescreen}, upscale, {sequence}, {{grandfathered content}}, blurred foreground, chromatic aberration, sketch, everyone, [sketch background], simple, [flat colors], ych (character), outline, multiple scenes, [[horror (theme)]], comic, ",
	3: "nsfw, lowres, artistic error, film grain, scan artifacts, worst quality, bad quality, jpeg artifacts, very displeasing, chromatic aberration, dithering, halftone, screentone, multiple views, logo, too many watermarks, negative space, blank page, @_@, mismatched pupils, glowing eyes, bad anatomy, ",
}

// Presets is the response body of the presets endpoint.
type Presets struct {
	QualityTags string         `json:"qualityTags"`
	UCPresets   map[int]string `json:"ucPresets"`
}
