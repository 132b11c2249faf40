package assessments

import (
	"net/url"

	"github.com/synapses/navigator/pkg/query"
	"github.com/synapses/navigator/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "assessments", "a").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("entity_id", "EntityID").
	Project("fund_name", "FundName").
	Project("product_type", "ProductType").
	Project("target_article", "TargetArticle").
	Project("assessment_data", "AssessmentData").
	Project("validation_results", "ValidationResults").
	Project("compliance_score", "ComplianceScore").
	Project("risk_level", "RiskLevel").
	Project("confidence", "Confidence").
	Project("reasoning", "Reasoning").
	Project("recommendations", "Recommendations").
	Project("status", "Status").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for assessment queries.
// Nil fields are ignored. Status, TargetArticle, RiskLevel, and EntityID use
// exact matching. FundName uses case-insensitive contains matching.
type Filters struct {
	Status        *string `json:"status,omitempty"`
	TargetArticle *string `json:"target_article,omitempty"`
	RiskLevel     *string `json:"risk_level,omitempty"`
	FundName      *string `json:"fund_name,omitempty"`
	EntityID      *string `json:"entity_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("TargetArticle", f.TargetArticle).
		WhereEquals("RiskLevel", f.RiskLevel).
		WhereContains("FundName", f.FundName).
		WhereEquals("EntityID", f.EntityID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if ta := values.Get("target_article"); ta != "" {
		f.TargetArticle = &ta
	}

	if rl := values.Get("risk_level"); rl != "" {
		f.RiskLevel = &rl
	}

	if fn := values.Get("fund_name"); fn != "" {
		f.FundName = &fn
	}

	if eid := values.Get("entity_id"); eid != "" {
		f.EntityID = &eid
	}

	return f
}

func scanAssessment(s repository.Scanner) (Assessment, error) {
	var a Assessment
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
