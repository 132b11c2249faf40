package api

import (
	"github.com/synapses/navigator/internal/classification"
	"github.com/synapses/navigator/internal/config"
	"github.com/synapses/navigator/internal/infrastructure"
	"github.com/synapses/navigator/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// classification engine shared across domain systems.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Engine     *classification.Engine
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Auth:      infra.Auth,
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Engine:     classification.NewEngine(cfg.Scoring),
	}
}
