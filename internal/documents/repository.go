package documents

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/synapses/navigator/internal/validation"
	"github.com/synapses/navigator/pkg/pagination"
	"github.com/synapses/navigator/pkg/query"
	"github.com/synapses/navigator/pkg/repository"
	"github.com/synapses/navigator/pkg/storage"
)

// batchConcurrency bounds parallel blob uploads within a batch.
const batchConcurrency = 4

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	userID string,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Document], error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserID", &userID).
		WhereSearch(page.Search, "Filename", "DocumentType")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, userID string, id uuid.UUID) (*Document, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	q, args := query.
		NewBuilder(projection).
		WhereEquals("ID", &id).
		WhereEquals("UserID", &userID).
		BuildSingleOrNull()

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, userID string, cmd CreateCommand) (*Document, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	if err := r.screen(userID, cmd); err != nil {
		return nil, err
	}

	documentType := cmd.DocumentType
	if documentType == "" {
		documentType = DefaultType
	}

	detected, err := json.Marshal(DetectContent(cmd.Filename))
	if err != nil {
		return nil, fmt.Errorf("marshal detected content: %w", err)
	}

	id := uuid.New()
	key := buildStorageKey(userID, id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload document blob: %w", err)
	}

	q := `
		INSERT INTO documents(id, user_id, filename, content_type, size_bytes, page_count, storage_key, document_type, detected_content, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, user_id, filename, content_type, size_bytes, page_count, storage_key, document_type, detected_content, status, uploaded_at, updated_at`

	insertArgs := []any{
		id,
		userID,
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		cmd.PageCount,
		key,
		documentType,
		detected,
		StatusProcessed,
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanDocument)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("document created", "id", d.ID, "user", userID, "filename", d.Filename)
	return &d, nil
}

// CreateBatch uploads multiple files concurrently. Per-file failures are
// reported in the corresponding BatchResult rather than failing the batch.
func (r *repo) CreateBatch(
	ctx context.Context,
	userID string,
	cmds []CreateCommand,
) ([]BatchResult, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	results := make([]BatchResult, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, cmd := range cmds {
		g.Go(func() error {
			doc, err := r.Create(gctx, userID, cmd)
			if err != nil {
				results[i] = BatchResult{Filename: cmd.Filename, Error: err.Error()}
				return nil
			}
			results[i] = BatchResult{Filename: cmd.Filename, Document: doc}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Download returns the document metadata and a stream of its blob content.
// The caller must close the reader.
func (r *repo) Download(
	ctx context.Context,
	userID string,
	id uuid.UUID,
) (*Document, io.ReadCloser, error) {
	doc, err := r.Find(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := r.storage.Download(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("download document blob: %w", err)
	}

	return doc, reader, nil
}

func (r *repo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	doc, err := r.Find(ctx, userID, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM documents WHERE id = $1 AND user_id = $2",
			id, userID,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, doc.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", doc.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("document deleted", "id", id, "user", userID)
	return nil
}

// screen enforces the upload file policy. Blocked extensions are logged as
// rejected attempts, distinct from ordinary validation failures.
func (r *repo) screen(userID string, cmd CreateCommand) error {
	err := validation.ValidateFile(validation.File{
		Filename:    cmd.Filename,
		Size:        int64(len(cmd.Data)),
		ContentType: cmd.ContentType,
	})
	if err == nil {
		return nil
	}

	if validation.IsSecurityRejection(err) {
		r.logger.Warn(
			"blocked file upload attempt",
			"user", userID,
			"filename", cmd.Filename,
		)
		return fmt.Errorf("%w: %s", ErrSecurityRejection, cmd.Filename)
	}
	if errors.Is(err, validation.ErrFileTooLarge) {
		return fmt.Errorf("%w: %s", ErrFileTooLarge, cmd.Filename)
	}
	return fmt.Errorf("%w: %s", ErrInvalidFile, err)
}

func buildStorageKey(userID string, id uuid.UUID, filename string) string {
	return fmt.Sprintf("%s/%s/%s", userID, id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "document"
	}
	return url.PathEscape(name)
}
