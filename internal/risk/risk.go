// Package risk derives a multi-category risk profile from a classified
// assessment. Pure analysis; no I/O.
package risk

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/synapses/navigator/internal/classification"
)

const reviewInterval = 90 * 24 * time.Hour

// Category is a scored risk dimension with supporting findings.
type Category struct {
	Name        string                   `json:"category"`
	Description string                   `json:"description"`
	Score       int                      `json:"score"`
	Level       classification.RiskLevel `json:"level"`
	Findings    []string                 `json:"findings"`
}

// Risk is a prioritized entry in the identified-risk list.
type Risk struct {
	Category    string                   `json:"category"`
	Description string                   `json:"description"`
	Level       classification.RiskLevel `json:"riskLevel"`
	Likelihood  string                   `json:"likelihood"`
	Impact      string                   `json:"impact"`
	Priority    string                   `json:"priority"`
	Findings    []string                 `json:"findings"`
}

// Mitigation is a recommended action addressing identified risks.
type Mitigation struct {
	Priority    string `json:"priority"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Timeline    string `json:"timeline"`
	Owner       string `json:"owner"`
}

// Profile is the full risk assessment outcome.
type Profile struct {
	OverallScore int                      `json:"overallRiskScore"`
	Level        classification.RiskLevel `json:"riskLevel"`
	Categories   []Category               `json:"categories"`
	TopRisks     []Risk                   `json:"identifiedRisks"`
	Mitigations  []Mitigation             `json:"mitigationRecommendations"`
	AssessedAt   time.Time                `json:"assessmentDate"`
	NextReview   time.Time                `json:"nextReviewDate"`
}

// Assess analyzes a classified request across regulatory, operational,
// reputational, financial, and data dimensions. The overall score is the
// mean of the category scores; higher scores indicate more risk.
func Assess(req classification.Request, result classification.Result) Profile {
	categories := []Category{
		analyzeRegulatory(req, result),
		analyzeOperational(req),
		analyzeReputational(req, result),
		analyzeFinancial(req, result),
		analyzeData(req),
	}

	overall := meanScore(categories)

	risks := identifyTopRisks(categories)
	now := time.Now().UTC()

	return Profile{
		OverallScore: overall,
		Level:        levelFor(overall),
		Categories:   categories,
		TopRisks:     risks,
		Mitigations:  mitigations(risks),
		AssessedAt:   now,
		NextReview:   now.Add(reviewInterval),
	}
}

func analyzeRegulatory(req classification.Request, result classification.Result) Category {
	score := 0
	findings := []string{}

	critical := 0
	for _, issue := range result.Validation.Issues {
		if strings.HasPrefix(issue, "Article Classification") ||
			strings.HasPrefix(issue, "Disclosure Completeness") {
			critical++
		}
	}
	if critical > 0 {
		score += critical * 25
		findings = append(findings, fmt.Sprintf("%d critical compliance failures identified", critical))
	}

	if result.Classification == classification.Article9 && result.ComplianceScore < 90 {
		score += 20
		findings = append(findings, "Article 9 products face heightened regulatory scrutiny")
	}

	if hasIssue(result, "PAI Indicators") {
		score += 15
		findings = append(findings, "PAI indicator gaps create regulatory non-compliance risk")
	}

	return category(
		"Regulatory Compliance",
		"Risk of regulatory penalties, enforcement actions, or compliance failures",
		score, findings,
	)
}

func analyzeOperational(req classification.Request) Category {
	score := 0
	findings := []string{}

	switch coverage := dataCoverage(req); {
	case coverage < 60:
		score += 30
		findings = append(findings, "Poor data coverage may lead to reporting failures")
	case coverage < 80:
		score += 15
		findings = append(findings, "Moderate data coverage requires monitoring and improvement")
	}

	if req.InvestmentStrategy == "" {
		score += 20
		findings = append(findings, "Undocumented investment strategy complicates compliance processes")
	}
	if req.RiskProfile == "" {
		score += 15
		findings = append(findings, "Missing risk profile weakens ongoing risk monitoring")
	}

	return category(
		"Operational",
		"Risk of operational failures in compliance processes and reporting",
		score, findings,
	)
}

func analyzeReputational(req classification.Request, result classification.Result) Category {
	score := 0
	findings := []string{}

	if strings.EqualFold(req.ProductType, "UCITS") && len(result.Validation.Issues) > 0 {
		score += 25
		findings = append(findings, "Public fund compliance issues may attract media attention")
	}

	if result.Classification != classification.Article6 {
		if hasIssue(result, "PAI Indicators") || hasIssue(result, "EU Taxonomy Alignment") ||
			hasIssue(result, "Article Classification") {
			score += 30
			findings = append(findings, "Sustainability compliance gaps create greenwashing risk")
		}
	}

	if result.ComplianceScore < 70 {
		score += 20
		findings = append(findings, "Low compliance score may damage market reputation")
	}

	return category(
		"Reputational",
		"Risk of reputational damage from compliance failures or greenwashing accusations",
		score, findings,
	)
}

func analyzeFinancial(req classification.Request, result classification.Result) Category {
	score := 0
	findings := []string{}

	if req.RiskProfile == classification.RiskProfileHigh {
		score += 20
		findings = append(findings, "High risk appetite increases potential remediation costs")
	}
	if result.Classification == classification.Article9 && req.TaxonomyAlignment == "" {
		score += 15
		findings = append(findings, "Unverified taxonomy claims expose the product to penalty risk")
	}
	if len(result.Validation.Issues) > 2 {
		score += 10
		findings = append(findings, "Multiple compliance gaps compound the financial impact of enforcement")
	}

	return category(
		"Financial",
		"Financial impact of compliance failures, penalties, and remediation costs",
		score, findings,
	)
}

func analyzeData(req classification.Request) Category {
	score := 0
	findings := []string{}

	if len(req.PAIIndicators) == 0 {
		score += 25
		findings = append(findings, "No PAI indicator data supplied for adverse impact reporting")
	}
	if req.PrincipalAdverseImpacts == "" {
		score += 20
		findings = append(findings, "No adverse impact narrative provided to support disclosures")
	}
	if req.TaxonomyAlignment == "" {
		score += 15
		findings = append(findings, "Taxonomy alignment data not reported")
	}

	return category(
		"Data Quality",
		"Risk related to data accuracy, completeness, and reliability",
		score, findings,
	)
}

func identifyTopRisks(categories []Category) []Risk {
	sorted := make([]Category, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	risks := make([]Risk, 0, len(sorted))
	for _, c := range sorted {
		risks = append(risks, Risk{
			Category:    c.Name,
			Description: c.Description,
			Level:       c.Level,
			Likelihood:  scale(c.Score, 70, 40),
			Impact:      scale(c.Score, 60, 30),
			Priority:    priority(c.Score),
			Findings:    c.Findings,
		})
	}
	return risks
}

func mitigations(risks []Risk) []Mitigation {
	recs := []Mitigation{}

	for _, r := range risks {
		switch r.Priority {
		case "Critical":
			recs = append(recs, Mitigation{
				Priority:    "Immediate",
				Action:      fmt.Sprintf("Address %s compliance gaps", strings.ToLower(r.Category)),
				Description: specificMitigation(r.Category),
				Timeline:    "30 days",
				Owner:       "Compliance Team",
			})
		case "High":
			recs = append(recs, Mitigation{
				Priority:    "Short-term",
				Action:      fmt.Sprintf("Improve %s processes", strings.ToLower(r.Category)),
				Description: specificMitigation(r.Category),
				Timeline:    "90 days",
				Owner:       "Operations Team",
			})
		}
	}

	recs = append(recs,
		Mitigation{
			Priority:    "Long-term",
			Action:      "Implement continuous monitoring",
			Description: "Establish automated compliance monitoring and alerting",
			Timeline:    "6 months",
			Owner:       "Technology Team",
		},
		Mitigation{
			Priority:    "Ongoing",
			Action:      "Regular risk assessments",
			Description: "Conduct quarterly risk assessments and annual comprehensive reviews",
			Timeline:    "Quarterly",
			Owner:       "Risk Committee",
		},
	)

	return recs
}

func specificMitigation(name string) string {
	switch name {
	case "Regulatory Compliance":
		return "Review and update compliance procedures and implement corrective actions"
	case "Operational":
		return "Strengthen operational controls and improve data collection processes"
	case "Reputational":
		return "Improve transparency in sustainability reporting and stakeholder communication"
	case "Financial":
		return "Assess financial exposure and establish a remediation budget"
	case "Data Quality":
		return "Implement data validation controls and establish data quality metrics"
	default:
		return "Implement category-specific risk controls"
	}
}

func category(name, description string, score int, findings []string) Category {
	if score > 100 {
		score = 100
	}
	return Category{
		Name:        name,
		Description: description,
		Score:       score,
		Level:       levelFor(score),
		Findings:    findings,
	}
}

func dataCoverage(req classification.Request) int {
	fields := []bool{
		req.ProductType != "",
		req.InvestmentStrategy != "",
		len(req.SustainabilityObjectives) > 0,
		req.PrincipalAdverseImpacts != "",
		req.TaxonomyAlignment != "",
		req.RiskProfile != "",
	}

	filled := 0
	for _, present := range fields {
		if present {
			filled++
		}
	}
	return filled * 100 / len(fields)
}

func hasIssue(result classification.Result, category string) bool {
	for _, issue := range result.Validation.Issues {
		if strings.HasPrefix(issue, category) {
			return true
		}
	}
	return false
}

// meanScore is the rounded mean of the category scores.
func meanScore(categories []Category) int {
	total := 0
	for _, c := range categories {
		total += c.Score
	}
	return int(math.Round(float64(total) / float64(len(categories))))
}

func levelFor(score int) classification.RiskLevel {
	switch {
	case score >= 70:
		return classification.RiskHigh
	case score >= 40:
		return classification.RiskMedium
	default:
		return classification.RiskLow
	}
}

func scale(score, high, medium int) string {
	switch {
	case score > high:
		return "High"
	case score > medium:
		return "Medium"
	default:
		return "Low"
	}
}

func priority(score int) string {
	switch {
	case score > 70:
		return "Critical"
	case score > 40:
		return "High"
	default:
		return "Medium"
	}
}
