// Package web serves the built single-page client and provides a router
// with fallback handling for unmatched routes.
package web

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// Config locates the built client assets on disk.
type Config struct {
	DistDir string `toml:"dist_dir"`
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.DistDir != "" {
		c.DistDir = overlay.DistDir
	}
}

// SPA returns a handler that serves files from fsys and falls back to
// index.html for any path that does not resolve to a file, so client-side
// routes survive a page reload. Paths under apiPrefix are never rewritten.
func SPA(fsys fs.FS, apiPrefix string) http.HandlerFunc {
	files := http.FileServer(http.FS(fsys))

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if apiPrefix != "" && (r.URL.Path == apiPrefix || strings.HasPrefix(r.URL.Path, apiPrefix+"/")) {
			http.NotFound(w, r)
			return
		}

		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" {
			name = "index.html"
		}

		info, err := fs.Stat(fsys, name)
		if err == nil && !info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		ServeIndex(fsys)(w, r)
	}
}

// ServeIndex returns a handler that writes index.html from fsys.
func ServeIndex(fsys fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(fsys, "index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			w.Write(data)
		}
	}
}
