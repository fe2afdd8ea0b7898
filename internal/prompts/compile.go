package prompts

import (
	"regexp"
	"strings"
)

// space matches Unicode whitespace, not only the ASCII set RE2 assigns to \s.
const space = `[\s\v\p{Z}\x{FEFF}]`

var (
	commaRun      = regexp.MustCompile(`,(?:` + space + `*,)+`)
	leadingComma  = regexp.MustCompile(`^,` + space + `*`)
	trailingComma = regexp.MustCompile(`,` + space + `*$`)
)

// Compile assembles the prompt text in fixed order: base prompt, pre modules,
// subject, then post and unset modules. Module order within each group follows
// the input. Blank parts are skipped and parts are joined with ", ". Runs of
// commas left by parts that already carry separators collapse to one comma,
// so the result never holds consecutive, leading, or trailing commas.
//
// When activeOnly is false, inactive modules are included as well.
func Compile(src Source, subject string, activeOnly bool) string {
	parts := make([]string, 0, len(src.Modules)+2)

	parts = appendPart(parts, src.BasePrompt)

	for _, m := range src.Modules {
		if m.Position == PositionPre && (!activeOnly || m.IsActive) {
			parts = appendPart(parts, m.Content)
		}
	}

	parts = appendPart(parts, subject)

	for _, m := range src.Modules {
		if (m.Position == PositionPost || m.Position == "") && (!activeOnly || m.IsActive) {
			parts = appendPart(parts, m.Content)
		}
	}

	out := strings.Join(parts, ", ")
	out = commaRun.ReplaceAllString(out, ",")
	out = leadingComma.ReplaceAllString(out, "")
	out = trailingComma.ReplaceAllString(out, "")

	return out
}

// CompileDefault compiles with only active modules.
func CompileDefault(src Source, subject string) string {
	return Compile(src, subject, true)
}

func appendPart(parts []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		return append(parts, s)
	}
	return parts
}
