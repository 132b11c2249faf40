package reports

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/synapses/navigator/internal/assessments"
	"github.com/synapses/navigator/pkg/pagination"
)

// System defines the public contract for report domain operations. All
// operations are scoped to the given user. It also implements
// assessments.ReportGenerator for the derived report written on persist.
type System interface {
	Handler() *Handler

	GenerateForAssessment(
		ctx context.Context,
		assessment *assessments.Assessment,
	) (json.RawMessage, error)

	Create(
		ctx context.Context,
		userID string,
		assessmentID uuid.UUID,
		reportType string,
		includeCharts bool,
	) (*Report, error)

	List(
		ctx context.Context,
		userID string,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Report], error)

	Find(ctx context.Context, userID string, id uuid.UUID) (*Report, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}
