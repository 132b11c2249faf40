package api

import (
	"github.com/synapses/navigator/internal/assessments"
	"github.com/synapses/navigator/internal/config"
	"github.com/synapses/navigator/internal/documents"
	"github.com/synapses/navigator/internal/reports"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Assessments assessments.System
	Reports     reports.System
	Documents   documents.System
}

// NewDomain creates all domain systems from the API runtime. Reports are
// wired into assessments as the generator for derived compliance reports.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	reportsSystem := reports.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
		cfg.Scoring.ReportTTLDuration(),
	)

	assessmentsSystem := assessments.New(
		runtime.Database.Connection(),
		reportsSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	documentsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Assessments: assessmentsSystem,
		Reports:     reportsSystem,
		Documents:   documentsSystem,
	}
}
