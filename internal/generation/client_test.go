package generation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/promptchain/internal/generation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, upstream http.HandlerFunc, mutate func(*generation.Config)) generation.System {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := &generation.Config{BaseURL: srv.URL, APIKey: "test-key"}
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	return generation.New(cfg, discardLogger())
}

func TestGenerateSendsCredentials(t *testing.T) {
	var gotAuth, gotPath, gotType string
	sys := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		w.Write([]byte("zipbytes"))
	}, nil)

	data, err := sys.Generate(context.Background(), []byte(`{}`))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(data) != "zipbytes" {
		t.Errorf("data: got %q", data)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization: got %q", gotAuth)
	}
	if gotPath != "/ai/generate-image" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotType != "application/json" {
		t.Errorf("content type: got %q", gotType)
	}
}

func TestGenerateRelaysUpstreamError(t *testing.T) {
	sys := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "insufficient anlas", http.StatusPaymentRequired)
	}, nil)

	_, err := sys.Generate(context.Background(), []byte(`{}`))

	var upstream *generation.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("got %v, want UpstreamError", err)
	}
	if upstream.Status != http.StatusPaymentRequired {
		t.Errorf("status: got %d", upstream.Status)
	}
	if upstream.Message != "insufficient anlas" {
		t.Errorf("message: got %q", upstream.Message)
	}
	if generation.MapHTTPStatus(err) != http.StatusPaymentRequired {
		t.Errorf("mapped status: got %d", generation.MapHTTPStatus(err))
	}
}

func TestGenerateEnforcesArchiveLimit(t *testing.T) {
	sys := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 2048))
	}, func(c *generation.Config) {
		c.MaxArchiveSize = "1KB"
	})

	if _, err := sys.Generate(context.Background(), []byte(`{}`)); !errors.Is(err, generation.ErrArchiveTooLarge) {
		t.Errorf("got %v, want ErrArchiveTooLarge", err)
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	called := false
	sys := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, func(c *generation.Config) {
		c.APIKey = ""
	})

	if _, err := sys.Generate(context.Background(), []byte(`{}`)); !errors.Is(err, generation.ErrNotConfigured) {
		t.Errorf("got %v, want ErrNotConfigured", err)
	}
	if called {
		t.Error("upstream should not be called without a key")
	}
}

func TestGenerateImage(t *testing.T) {
	archive := buildArchive(t, map[string][]byte{"image_0.png": pngHeader})
	sys := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.Write(archive)
	}, nil)

	img, err := sys.GenerateImage(context.Background(), generation.ImageRequest{
		Prompt:         "masterpiece, 1girl",
		NegativePrompt: "lowres",
		Params:         defaultParams(),
	})
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if img.ContentType != "image/png" {
		t.Errorf("content type: got %q", img.ContentType)
	}
}

func TestGenerateImageRejectsInvalidParams(t *testing.T) {
	called := false
	sys := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, nil)

	_, err := sys.GenerateImage(context.Background(), generation.ImageRequest{Prompt: "x"})
	if !errors.Is(err, generation.ErrInvalidRequest) {
		t.Errorf("got %v, want ErrInvalidRequest", err)
	}
	if called {
		t.Error("upstream should not be called for invalid params")
	}
}
