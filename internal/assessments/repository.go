package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/synapses/navigator/internal/classification"
	"github.com/synapses/navigator/pkg/pagination"
	"github.com/synapses/navigator/pkg/query"
	"github.com/synapses/navigator/pkg/repository"
)

type repo struct {
	db         *sql.DB
	reports    ReportGenerator
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an assessment repository implementing the System interface.
// The report generator is invoked after each successful persist; its failures
// are reported as warnings on the persist result.
func New(
	db *sql.DB,
	reports ReportGenerator,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		reports:    reports,
		logger:     logger.With("system", "assessments"),
		pagination: pagination,
	}
}

func (r *repo) Handler(engine *classification.Engine) *Handler {
	return NewHandler(r, engine, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	userID string,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Assessment], error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserID", &userID).
		WhereSearch(page.Search, "FundName", "EntityID", "Reasoning")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count assessments: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAssessment)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, userID string, id uuid.UUID) (*Assessment, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	q, args := query.
		NewBuilder(projection).
		WhereEquals("ID", &id).
		WhereEquals("UserID", &userID).
		BuildSingleOrNull()

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAssessment)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

// Persist writes the assessment record and then attempts the derived report.
// The user precondition is checked before any write; a missing user never
// reaches the database.
func (r *repo) Persist(
	ctx context.Context,
	userID string,
	req classification.Request,
	result classification.Result,
) (*PersistResult, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	snapshot, err := json.Marshal(Snapshot{
		ProductData:    req,
		Classification: result,
		Timestamp:      result.Timestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal assessment snapshot: %w", err)
	}

	validationResults, err := json.Marshal(result.Validation)
	if err != nil {
		return nil, fmt.Errorf("marshal validation results: %w", err)
	}

	recommendations, err := json.Marshal(result.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("marshal recommendations: %w", err)
	}

	targetArticle := result.Classification
	if req.TargetArticle.Valid() {
		targetArticle = req.TargetArticle
	}

	q := `
		INSERT INTO assessments(id, user_id, entity_id, fund_name, product_type, target_article, assessment_data, validation_results, compliance_score, risk_level, confidence, reasoning, recommendations, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, user_id, entity_id, fund_name, product_type, target_article, assessment_data, validation_results, compliance_score, risk_level, confidence, reasoning, recommendations, status, created_at`

	insertArgs := []any{
		uuid.New(),
		userID,
		entityID(),
		req.ProductName,
		req.ProductType,
		string(targetArticle),
		snapshot,
		validationResults,
		result.ComplianceScore,
		string(result.RiskLevel),
		result.Confidence,
		result.Reasoning,
		recommendations,
		StatusCompleted,
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Assessment, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanAssessment)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"assessment persisted",
		"id", a.ID,
		"entity_id", a.EntityID,
		"target_article", a.TargetArticle,
		"compliance_score", a.ComplianceScore,
	)

	persisted := &PersistResult{Assessment: &a}

	report, err := r.reports.GenerateForAssessment(ctx, &a)
	if err != nil {
		r.logger.Warn("derived report write failed", "assessment_id", a.ID, "error", err)
		persisted.ReportWarning = fmt.Sprintf("report generation failed: %v", err)
		return persisted, nil
	}
	persisted.Report = report

	return persisted, nil
}

func (r *repo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if userID == "" {
		return ErrAuthRequired
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM assessments WHERE id = $1 AND user_id = $2",
			id, userID,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("assessment deleted", "id", id)
	return nil
}

// entityID generates the external product identifier. Nanosecond precision
// keeps rapid submissions from colliding on the entity_id unique constraint.
func entityID() string {
	return fmt.Sprintf("product_%d", time.Now().UnixNano())
}
