package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/JaimeStill/promptchain/internal/api"
	"github.com/JaimeStill/promptchain/internal/config"
	"github.com/JaimeStill/promptchain/internal/infrastructure"
	"github.com/JaimeStill/promptchain/pkg/module"
	"github.com/JaimeStill/promptchain/pkg/web"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	if cfg.Web.DistDir != "" {
		client := clientRouter(cfg.Web.DistDir, cfg.API.BasePath)
		router.HandleNative("/", client.ServeHTTP)
		infra.Logger.Info("serving client", "dist_dir", cfg.Web.DistDir)
	}

	return router
}

// clientRouter serves hashed build assets directly and routes every other
// path through the SPA handler so client-side routes resolve to index.html.
func clientRouter(distDir, apiPrefix string) *web.Router {
	fsys := os.DirFS(distDir)

	r := web.NewRouter()
	r.Handle("GET /assets/", http.FileServer(http.FS(fsys)))
	r.SetFallback(web.SPA(fsys, apiPrefix))
	return r
}
