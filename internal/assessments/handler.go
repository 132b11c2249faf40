package assessments

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/synapses/navigator/internal/auth"
	"github.com/synapses/navigator/internal/classification"
	"github.com/synapses/navigator/internal/validation"
	"github.com/synapses/navigator/pkg/handlers"
	"github.com/synapses/navigator/pkg/pagination"
	"github.com/synapses/navigator/pkg/routes"
)

// Handler provides HTTP endpoints for classification and assessment operations.
type Handler struct {
	sys        System
	engine     *classification.Engine
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// ClassifyResponse is the payload returned by a successful classification.
type ClassifyResponse struct {
	Assessment    *Assessment           `json:"assessment"`
	Result        classification.Result `json:"result"`
	Report        json.RawMessage       `json:"report,omitempty"`
	ReportWarning string                `json:"reportWarning,omitempty"`
}

// NewHandler creates a Handler with the given system, engine, logger, and
// pagination config.
func NewHandler(
	sys System,
	engine *classification.Engine,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		engine:     engine,
		logger:     logger.With("handler", "assessments"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for assessment endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/assessments",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// ClassifyRoutes returns the route group for the classification endpoint.
func (h *Handler) ClassifyRoutes() routes.Group {
	return routes.Group{
		Prefix: "/classifications",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Classify},
		},
	}
}

// Classify validates a product submission, derives its classification, and
// persists the assessment. Validation failures return the full validation
// result, including the sanitized echo of the input, with a 400 status.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req classification.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	validated := validation.Validate(req)
	if !validated.IsValid {
		h.logger.Info("submission rejected", "errors", validated.Errors)
		handlers.RespondJSON(w, http.StatusBadRequest, validated)
		return
	}

	result := h.engine.Classify(validated.Sanitized)

	user, _ := auth.FromContext(r.Context())
	persisted, err := h.sys.Persist(r.Context(), user.ID, validated.Sanitized, result)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, ClassifyResponse{
		Assessment:    persisted.Assessment,
		Result:        result,
		Report:        persisted.Report,
		ReportWarning: persisted.ReportWarning,
	})
}

// List returns a paginated list of the caller's assessments with optional
// query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.FromContext(r.Context())
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), user.ID, page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single assessment by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	user, _ := auth.FromContext(r.Context())
	a, err := h.sys.Find(r.Context(), user.ID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// Search accepts a JSON body with pagination and filter criteria and returns
// matching assessments.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	user, _ := auth.FromContext(r.Context())
	result, err := h.sys.List(r.Context(), user.ID, req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete removes an assessment by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	user, _ := auth.FromContext(r.Context())
	if err := h.sys.Delete(r.Context(), user.ID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
