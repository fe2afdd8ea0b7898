package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// ImageRequest is a structured generation request built from a compiled prompt.
type ImageRequest struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negativePrompt"`
	Params         Params `json:"params"`
}

// System defines the generation operations exposed to handlers.
type System interface {
	Handler() *Handler

	// Generate forwards a raw request body upstream and returns the archive bytes.
	Generate(ctx context.Context, body []byte) ([]byte, error)
	// GenerateImage builds the upstream payload, forwards it, and extracts the image.
	GenerateImage(ctx context.Context, req ImageRequest) (*Image, error)
}

type client struct {
	cfg    *Config
	http   *http.Client
	logger *slog.Logger
}

// New creates a generation client. Upstream calls are not retried.
func New(cfg *Config, logger *slog.Logger) System {
	return &client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.TimeoutDuration()},
		logger: logger.With("system", "generation"),
	}
}

func (c *client) Handler() *Handler {
	return NewHandler(c, c.logger)
}

func (c *client) Generate(ctx context.Context, body []byte) ([]byte, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	limit := c.cfg.MaxArchiveBytes()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("upstream rejected generation", "status", resp.StatusCode)
		return nil, &UpstreamError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(data)),
		}
	}

	if int64(len(data)) > limit {
		return nil, ErrArchiveTooLarge
	}

	c.logger.Info("generation completed", "bytes", len(data))
	return data, nil
}

func (c *client) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	payload := BuildPayload(req.Prompt, req.NegativePrompt, req.Params, c.cfg.Model)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	if err := ValidateRequest(body); err != nil {
		return nil, err
	}

	archive, err := c.Generate(ctx, body)
	if err != nil {
		return nil, err
	}

	return ExtractImage(archive, c.cfg.MaxArchiveBytes())
}
