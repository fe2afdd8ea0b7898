package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/promptchain/pkg/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminKey(t *testing.T) {
	handler := middleware.AdminKey("s3cret")(okHandler())

	tests := []struct {
		name   string
		method string
		key    string
		want   int
	}{
		{"missing key", http.MethodDelete, "", http.StatusUnauthorized},
		{"wrong key", http.MethodPut, "nope", http.StatusUnauthorized},
		{"prefix of key", http.MethodPut, "s3c", http.StatusUnauthorized},
		{"correct key", http.MethodPut, "s3cret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/chains/1", nil)
			if tt.key != "" {
				req.Header.Set(middleware.AdminKeyHeader, tt.key)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAdminKeyEmptyConfiguredKeyRejects(t *testing.T) {
	handler := middleware.AdminKey("")(okHandler())

	req := httptest.NewRequest(http.MethodDelete, "/chains/1", nil)
	req.Header.Set(middleware.AdminKeyHeader, "")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCORSWildcard(t *testing.T) {
	cfg := &middleware.CORSConfig{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	cfg.Enabled = true
	cfg.Origins = []string{"*"}

	handler := middleware.CORS(cfg)(okHandler())

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/chains", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("allow-origin = %q, want *", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization, X-Master-Key" {
			t.Errorf("allow-headers = %q", got)
		}
	})

	t.Run("passthrough", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/chains", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestCORSSpecificOrigin(t *testing.T) {
	cfg := &middleware.CORSConfig{Enabled: true, Origins: []string{"https://a.example"}}
	cfg.Finalize(nil)

	handler := middleware.CORS(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/chains", nil)
	req.Header.Set("Origin", "https://b.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q, want empty for disallowed origin", got)
	}

	req.Header.Set("Origin", "https://a.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://a.example" {
		t.Errorf("allow-origin = %q, want https://a.example", got)
	}
}

func TestStackOrder(t *testing.T) {
	var order []string
	mw := middleware.New()
	for _, name := range []string{"first", "second"} {
		mw.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	mw.Apply(okHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}
}
