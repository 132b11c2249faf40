package documents

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/synapses/navigator/pkg/pagination"
)

// System defines the public contract for document domain operations.
// Every operation is scoped to the authenticated user that owns the
// document and fails with ErrAuthRequired when userID is empty.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		userID string,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, userID string, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, userID string, cmd CreateCommand) (*Document, error)
	CreateBatch(ctx context.Context, userID string, cmds []CreateCommand) ([]BatchResult, error)
	Download(ctx context.Context, userID string, id uuid.UUID) (*Document, io.ReadCloser, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}
