// Package reports generates and persists compliance reports derived from
// assessments. Reports are immutable documents with a fixed retention window.
package reports

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Supported report types.
const (
	TypeFullCompliance    = "full_compliance"
	TypePAISummary        = "pai_summary"
	TypeTaxonomyAlignment = "taxonomy_alignment"
	TypeRiskAssessment    = "risk_assessment"
)

// ValidType reports whether t is a supported report type.
func ValidType(t string) bool {
	switch t {
	case TypeFullCompliance, TypePAISummary, TypeTaxonomyAlignment, TypeRiskAssessment:
		return true
	}
	return false
}

// Report is a persisted compliance report referencing its source assessment.
type Report struct {
	ID           uuid.UUID       `json:"id"`
	UserID       string          `json:"user_id"`
	AssessmentID uuid.UUID       `json:"assessment_id"`
	ReportType   string          `json:"report_type"`
	ReportData   json.RawMessage `json:"report_data"`
	GeneratedAt  time.Time       `json:"generated_at"`
	ExpiresAt    time.Time       `json:"expires_at"`
}
