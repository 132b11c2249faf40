package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/synapses/navigator/internal/assessments"
	"github.com/synapses/navigator/pkg/pagination"
	"github.com/synapses/navigator/pkg/query"
	"github.com/synapses/navigator/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	ttl        time.Duration
}

// New creates a report repository implementing the System interface.
// Reports expire ttl after generation.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
	ttl time.Duration,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "reports"),
		pagination: pagination,
		ttl:        ttl,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// GenerateForAssessment writes the default full compliance report for a
// freshly persisted assessment and returns it serialized.
func (r *repo) GenerateForAssessment(
	ctx context.Context,
	assessment *assessments.Assessment,
) (json.RawMessage, error) {
	report, err := r.insert(ctx, assessment, TypeFullCompliance, true)
	if err != nil {
		return nil, err
	}

	serialized, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return serialized, nil
}

func (r *repo) Create(
	ctx context.Context,
	userID string,
	assessmentID uuid.UUID,
	reportType string,
	includeCharts bool,
) (*Report, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if !ValidType(reportType) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, reportType)
	}

	assessment, err := r.findAssessment(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}

	return r.insert(ctx, assessment, reportType, includeCharts)
}

func (r *repo) insert(
	ctx context.Context,
	assessment *assessments.Assessment,
	reportType string,
	includeCharts bool,
) (*Report, error) {
	doc, err := buildDocument(assessment, reportType, includeCharts)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal report document: %w", err)
	}

	q := `
		INSERT INTO reports(id, user_id, assessment_id, report_type, report_data, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, assessment_id, report_type, report_data, generated_at, expires_at`

	insertArgs := []any{
		uuid.New(),
		assessment.UserID,
		assessment.ID,
		reportType,
		data,
		time.Now().UTC().Add(r.ttl),
	}

	report, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Report, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanReport)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"report generated",
		"id", report.ID,
		"assessment_id", report.AssessmentID,
		"report_type", report.ReportType,
	)
	return &report, nil
}

// findAssessment loads the source assessment scoped to the requesting user.
func (r *repo) findAssessment(
	ctx context.Context,
	userID string,
	id uuid.UUID,
) (*assessments.Assessment, error) {
	q := `
		SELECT id, user_id, entity_id, fund_name, product_type, target_article, assessment_data, validation_results, compliance_score, risk_level, confidence, reasoning, recommendations, status, created_at
		FROM assessments WHERE id = $1 AND user_id = $2`

	a, err := repository.QueryOne(ctx, r.db, q, []any{id, userID}, scanSourceAssessment)
	if err != nil {
		return nil, repository.MapError(err, ErrAssessmentNotFound, ErrDuplicate)
	}
	return &a, nil
}

func scanSourceAssessment(s repository.Scanner) (assessments.Assessment, error) {
	var a assessments.Assessment
	err := s.Scan(
		&a.ID,
		&a.UserID,
		&a.EntityID,
		&a.FundName,
		&a.ProductType,
		&a.TargetArticle,
		&a.AssessmentData,
		&a.ValidationResults,
		&a.ComplianceScore,
		&a.RiskLevel,
		&a.Confidence,
		&a.Reasoning,
		&a.Recommendations,
		&a.Status,
		&a.CreatedAt,
	)
	return a, err
}

func (r *repo) List(
	ctx context.Context,
	userID string,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Report], error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserID", &userID).
		WhereSearch(page.Search, "ReportType")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanReport)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, userID string, id uuid.UUID) (*Report, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	q, args := query.
		NewBuilder(projection).
		WhereEquals("ID", &id).
		WhereEquals("UserID", &userID).
		BuildSingleOrNull()

	report, err := repository.QueryOne(ctx, r.db, q, args, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &report, nil
}

func (r *repo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if userID == "" {
		return ErrAuthRequired
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM reports WHERE id = $1 AND user_id = $2",
			id, userID,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("report deleted", "id", id)
	return nil
}
