package assessments

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/synapses/navigator/internal/classification"
	"github.com/synapses/navigator/pkg/pagination"
)

// ReportGenerator creates the derived compliance report for a newly persisted
// assessment. A failure is surfaced as a warning alongside the persisted
// assessment, never as a hard error.
type ReportGenerator interface {
	GenerateForAssessment(ctx context.Context, assessment *Assessment) (json.RawMessage, error)
}

// System defines the public contract for assessment domain operations.
// All operations are scoped to the given user.
type System interface {
	Handler(engine *classification.Engine) *Handler

	List(
		ctx context.Context,
		userID string,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Assessment], error)

	Find(ctx context.Context, userID string, id uuid.UUID) (*Assessment, error)

	Persist(
		ctx context.Context,
		userID string,
		req classification.Request,
		result classification.Result,
	) (*PersistResult, error)

	Delete(ctx context.Context, userID string, id uuid.UUID) error
}
