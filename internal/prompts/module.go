// Package prompts compiles prompt text from a chain's base prompt, its
// positionable modules, and a caller-supplied subject.
package prompts

// Position places a module before or after the subject in a compiled prompt.
// An unset position is treated as PositionPost.
type Position string

const (
	PositionPre  Position = "pre"
	PositionPost Position = "post"
)

// Valid reports whether p is pre, post, or unset.
func (p Position) Valid() bool {
	return p == "" || p == PositionPre || p == PositionPost
}

// Module is a reusable, toggleable fragment of prompt text.
type Module struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Content  string   `json:"content"`
	IsActive bool     `json:"isActive"`
	Position Position `json:"position,omitempty"`
}

// Source is the subset of a chain version the compiler reads.
type Source struct {
	BasePrompt string   `json:"basePrompt"`
	Modules    []Module `json:"modules"`
}

// ValidateModules rejects modules with an unknown position.
func ValidateModules(modules []Module) error {
	for _, m := range modules {
		if !m.Position.Valid() {
			return ErrInvalidPosition
		}
	}
	return nil
}
