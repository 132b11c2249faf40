// Package assessments persists classification outcomes as auditable
// assessment records scoped to the authenticated user. Each persisted
// assessment carries a snapshot of the submitted product data and the
// derived classification, and triggers a best-effort compliance report.
package assessments

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/synapses/navigator/internal/classification"
)

// StatusCompleted marks an assessment whose classification run finished.
const StatusCompleted = "completed"

// Assessment is a persisted record of one classification run. Never mutated
// after creation.
type Assessment struct {
	ID                uuid.UUID       `json:"id"`
	UserID            string          `json:"user_id"`
	EntityID          string          `json:"entity_id"`
	FundName          string          `json:"fund_name"`
	ProductType       string          `json:"product_type"`
	TargetArticle     string          `json:"target_article"`
	AssessmentData    json.RawMessage `json:"assessment_data"`
	ValidationResults json.RawMessage `json:"validation_results"`
	ComplianceScore   int             `json:"compliance_score"`
	RiskLevel         string          `json:"risk_level"`
	Confidence        float64         `json:"confidence"`
	Reasoning         string          `json:"reasoning"`
	Recommendations   json.RawMessage `json:"recommendations"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Snapshot is the audit copy stored in assessment_data.
type Snapshot struct {
	ProductData    classification.Request `json:"productData"`
	Classification classification.Result  `json:"classification"`
	Timestamp      time.Time              `json:"timestamp"`
}

// PersistResult is the outcome of persisting a classification. ReportWarning
// carries a non-fatal failure from the derived report write; the assessment
// itself is still persisted when it is set.
type PersistResult struct {
	Assessment    *Assessment     `json:"assessment"`
	Report        json.RawMessage `json:"report,omitempty"`
	ReportWarning string          `json:"reportWarning,omitempty"`
}
