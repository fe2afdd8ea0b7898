package chains

import (
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/promptchain/internal/generation"
)

func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeList decodes a stored JSON array. An empty column is the empty list.
func decodeList[T any](column, raw string) ([]T, error) {
	items := make([]T, 0)
	if raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, column, err)
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}

// decodeParams decodes stored generation params. An empty column is the zero value.
func decodeParams(raw string) (generation.Params, error) {
	var p generation.Params
	if raw == "" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return p, fmt.Errorf("%w: params: %v", ErrCorruptRecord, err)
	}
	return p, nil
}
