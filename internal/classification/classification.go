// Package classification derives SFDR article classifications from fund
// product submissions using a deterministic ordered rule set.
package classification

import "time"

// Article is an SFDR article classification.
type Article string

const (
	Article6 Article = "Article6"
	Article8 Article = "Article8"
	Article9 Article = "Article9"
)

// Valid reports whether the article is one of the three SFDR classifications.
func (a Article) Valid() bool {
	switch a {
	case Article6, Article8, Article9:
		return true
	}
	return false
}

// RiskProfile is the submitted risk appetite of a fund product.
type RiskProfile string

const (
	RiskProfileLow    RiskProfile = "low"
	RiskProfileMedium RiskProfile = "medium"
	RiskProfileHigh   RiskProfile = "high"
)

// RiskLevel is the derived risk rating of a classification result.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Request is a fund product submission to classify.
type Request struct {
	ProductName              string      `json:"productName"`
	ProductType              string      `json:"productType"`
	Description              string      `json:"description"`
	InvestmentStrategy       string      `json:"investmentStrategy,omitempty"`
	SustainabilityObjectives []string    `json:"sustainabilityObjectives,omitempty"`
	PrincipalAdverseImpacts  string      `json:"principalAdverseImpacts,omitempty"`
	TaxonomyAlignment        string      `json:"taxonomyAlignment,omitempty"`
	PAIIndicators            []string    `json:"paiIndicators,omitempty"`
	RiskProfile              RiskProfile `json:"riskProfile,omitempty"`
	TargetArticle            Article     `json:"targetArticle,omitempty"`
}

// Validation summarizes the compliance checks run against a classified request.
type Validation struct {
	IsValid bool     `json:"isValid"`
	Issues  []string `json:"issues"`
}

// Result is the outcome of classifying a request. Immutable after creation.
type Result struct {
	Classification  Article    `json:"classification"`
	ComplianceScore int        `json:"complianceScore"`
	RiskLevel       RiskLevel  `json:"riskLevel"`
	Confidence      float64    `json:"confidence"`
	Reasoning       string     `json:"reasoning"`
	Recommendations []string   `json:"recommendations"`
	Timestamp       time.Time  `json:"timestamp"`
	Validation      Validation `json:"validation"`
}
