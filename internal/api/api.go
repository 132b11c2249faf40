// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/synapses/navigator/internal/config"
	"github.com/synapses/navigator/internal/infrastructure"
	"github.com/synapses/navigator/pkg/middleware"
	"github.com/synapses/navigator/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Every route under the module requires a bearer token resolved by the auth
// middleware, except the OpenAPI document, which stays public so the Scalar
// UI can load it.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(exemptSpec(runtime.Auth.Middleware()))

	return m, nil
}

// exemptSpec applies authMW to every route except the OpenAPI document.
// Paths here are module-relative; the /api prefix is already stripped.
func exemptSpec(authMW func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		authed := authMW(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && r.URL.Path == "/openapi.json" {
				next.ServeHTTP(w, r)
				return
			}
			authed.ServeHTTP(w, r)
		})
	}
}
