package main

import (
	"encoding/json"
	"net/http"

	"github.com/synapses/navigator/internal/api"
	"github.com/synapses/navigator/internal/config"
	"github.com/synapses/navigator/internal/infrastructure"
	"github.com/synapses/navigator/pkg/middleware"
	"github.com/synapses/navigator/pkg/module"
	"github.com/synapses/navigator/web/scalar"
)

// Modules holds every mountable module of the service: the API itself
// and the Scalar documentation UI.
type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{API: apiModule, Scalar: scalarModule}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

// buildRouter creates the root router with the unprefixed health
// endpoints. Liveness always succeeds; readiness tracks lifecycle
// startup completion.
func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})

	return router
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
