package reports

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/synapses/navigator/pkg/query"
	"github.com/synapses/navigator/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "reports", "r").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("assessment_id", "AssessmentID").
	Project("report_type", "ReportType").
	Project("report_data", "ReportData").
	Project("generated_at", "GeneratedAt").
	Project("expires_at", "ExpiresAt")

var defaultSort = query.SortField{
	Field:      "GeneratedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for report queries.
// Nil fields are ignored; all filters use exact matching.
type Filters struct {
	ReportType   *string    `json:"report_type,omitempty"`
	AssessmentID *uuid.UUID `json:"assessment_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ReportType", f.ReportType).
		WhereEquals("AssessmentID", f.AssessmentID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if rt := values.Get("report_type"); rt != "" {
		f.ReportType = &rt
	}

	if aid := values.Get("assessment_id"); aid != "" {
		if id, err := uuid.Parse(aid); err == nil {
			f.AssessmentID = &id
		}
	}

	return f
}

func scanReport(s repository.Scanner) (Report, error) {
	var r Report
	err := s.Scan(
		&r.ID,
		&r.UserID,
		&r.AssessmentID,
		&r.ReportType,
		&r.ReportData,
		&r.GeneratedAt,
		&r.ExpiresAt,
	)
	return r, err
}
