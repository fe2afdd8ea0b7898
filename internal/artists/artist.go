// Package artists stores reference artists whose names are mixed into prompts.
package artists

// Artist is a named style reference with an example image.
type Artist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// SaveCommand inserts or replaces an artist. An empty ID creates a new record.
type SaveCommand struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}
