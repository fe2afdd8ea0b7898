// Package inspirations stores saved reference images with the prompts that produced them.
package inspirations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Inspiration is a saved image together with its prompt.
type Inspiration struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveCommand inserts or replaces an inspiration. An empty ID creates a new
// record and a zero CreatedAt is stamped with the current time.
// CreatedAt accepts an RFC3339 string or Unix milliseconds.
type SaveCommand struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON decodes createdAt from either an RFC3339 string or a number of
// Unix milliseconds. Null leaves it zero.
func (c *SaveCommand) UnmarshalJSON(data []byte) error {
	type plain SaveCommand
	var p struct {
		plain
		CreatedAt json.RawMessage `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	created, err := decodeCreatedAt(p.CreatedAt)
	if err != nil {
		return err
	}

	*c = SaveCommand(p.plain)
	c.CreatedAt = created
	return nil
}

func decodeCreatedAt(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, nil
	}

	if raw[0] == '"' {
		var t time.Time
		if err := json.Unmarshal(raw, &t); err != nil {
			return time.Time{}, fmt.Errorf("createdAt: %w", err)
		}
		return t, nil
	}

	var ms int64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, fmt.Errorf("createdAt: %w", err)
	}
	return time.UnixMilli(ms).UTC(), nil
}
