package api

import (
	"net/http"

	"github.com/synapses/navigator/internal/config"
	"github.com/synapses/navigator/pkg/openapi"
	"github.com/synapses/navigator/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	assessmentsHandler := domain.Assessments.Handler(runtime.Engine)

	routes.Register(
		mux,
		assessmentsHandler.ClassifyRoutes(),
		assessmentsHandler.Routes(),
		domain.Reports.Handler().Routes(),
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)

	spec, err := openapi.MarshalJSON(buildSpec(cfg))
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}
