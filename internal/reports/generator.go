package reports

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/synapses/navigator/internal/assessments"
	"github.com/synapses/navigator/internal/classification"
	"github.com/synapses/navigator/internal/risk"
)

// Metadata identifies the report and its source assessment.
type Metadata struct {
	ReportType     string    `json:"reportType"`
	GeneratedAt    time.Time `json:"generatedAt"`
	FundName       string    `json:"fundName"`
	EntityID       string    `json:"entityId"`
	TargetArticle  string    `json:"targetArticle"`
	AssessmentDate time.Time `json:"assessmentDate"`
	ReportVersion  string    `json:"reportVersion"`
}

// ExecutiveSummary condenses the assessment outcome for report readers.
type ExecutiveSummary struct {
	OverallStatus   string   `json:"overallStatus"`
	ComplianceScore int      `json:"complianceScore"`
	KeyFindings     []string `json:"keyFindings"`
	CriticalIssues  []string `json:"criticalIssues"`
	NextSteps       []string `json:"nextSteps"`
}

// SectionStatus is the per-area compliance standing in the overview.
type SectionStatus struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Recommendation is a single prioritized action item.
type Recommendation struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
	Timeline string `json:"timeline"`
	Impact   string `json:"impact"`
}

// RecommendationPlan groups recommendations by horizon.
type RecommendationPlan struct {
	Immediate []Recommendation `json:"immediate"`
	ShortTerm []Recommendation `json:"shortTerm"`
	LongTerm  []Recommendation `json:"longTerm"`
}

// PAIAnalysis summarizes Principal Adverse Impact indicator coverage.
type PAIAnalysis struct {
	MandatoryTotal    int    `json:"mandatoryTotal"`
	ProvidedCount     int    `json:"providedCount"`
	Completeness      string `json:"completeness"`
	DisclosureSummary string `json:"disclosureSummary"`
}

// TaxonomyAnalysis summarizes EU Taxonomy alignment disclosure.
type TaxonomyAnalysis struct {
	Reported  bool   `json:"reported"`
	Statement string `json:"statement"`
}

// Appendices carries the static regulatory reference material plus
// optional chart data.
type Appendices struct {
	RegulatoryReferences []string          `json:"regulatoryReferences"`
	Glossary             map[string]string `json:"glossary"`
	Methodology          string            `json:"methodology"`
	Charts               *Charts           `json:"charts,omitempty"`
}

// GaugeThreshold is one band of the compliance score gauge.
type GaugeThreshold struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Gauge renders the compliance score against its status bands.
type Gauge struct {
	Type       string           `json:"type"`
	Value      int              `json:"value"`
	Max        int              `json:"max"`
	Thresholds []GaugeThreshold `json:"thresholds"`
}

// ChartSlice is one segment of the issue distribution chart.
type ChartSlice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Charts holds the renderable chart data included on request.
type Charts struct {
	ComplianceScore   Gauge        `json:"complianceScoreChart"`
	IssueDistribution []ChartSlice `json:"issueDistribution"`
}

// Document is the full report body stored as report_data.
type Document struct {
	Metadata           Metadata                 `json:"metadata"`
	ExecutiveSummary   ExecutiveSummary         `json:"executiveSummary"`
	ComplianceOverview map[string]SectionStatus `json:"complianceOverview"`
	Recommendations    RecommendationPlan       `json:"recommendations"`
	Appendices         Appendices               `json:"appendices"`
	PAIAnalysis        *PAIAnalysis             `json:"paiAnalysis,omitempty"`
	TaxonomyAnalysis   *TaxonomyAnalysis        `json:"taxonomyAnalysis,omitempty"`
	RiskAnalysis       *risk.Profile            `json:"riskAnalysis,omitempty"`
}

const mandatoryPAICount = 18

// buildDocument assembles the report body for an assessment. The assessment's
// stored snapshot supplies the submitted product data and derived result.
func buildDocument(a *assessments.Assessment, reportType string, includeCharts bool) (Document, error) {
	var snap assessments.Snapshot
	if err := json.Unmarshal(a.AssessmentData, &snap); err != nil {
		return Document{}, fmt.Errorf("unmarshal assessment snapshot: %w", err)
	}

	issues := snap.Classification.Validation.Issues

	doc := Document{
		Metadata: Metadata{
			ReportType:     reportType,
			GeneratedAt:    time.Now().UTC(),
			FundName:       a.FundName,
			EntityID:       a.EntityID,
			TargetArticle:  a.TargetArticle,
			AssessmentDate: a.CreatedAt,
			ReportVersion:  "1.0",
		},
		ExecutiveSummary:   executiveSummary(a, issues),
		ComplianceOverview: complianceOverview(issues),
		Recommendations:    recommendationPlan(snap.Classification, issues),
		Appendices:         appendices(),
	}

	if includeCharts {
		doc.Appendices.Charts = charts(a.ComplianceScore, issues)
	}

	switch reportType {
	case TypePAISummary:
		doc.PAIAnalysis = paiAnalysis(snap.ProductData)
	case TypeTaxonomyAlignment:
		doc.TaxonomyAnalysis = taxonomyAnalysis(snap.ProductData)
	case TypeRiskAssessment:
		profile := risk.Assess(snap.ProductData, snap.Classification)
		doc.RiskAnalysis = &profile
	}

	return doc, nil
}

func executiveSummary(a *assessments.Assessment, issues []string) ExecutiveSummary {
	status := "Non-Compliant"
	switch {
	case a.ComplianceScore >= 80:
		status = "Compliant"
	case a.ComplianceScore >= 60:
		status = "Partially Compliant"
	}

	nextSteps := []string{
		"Address critical compliance gaps",
		"Revalidate after corrections",
	}
	if a.ComplianceScore >= 80 {
		nextSteps = []string{
			"Ready for regulatory submission",
			"Monitor for regulatory updates",
		}
	}

	return ExecutiveSummary{
		OverallStatus:   status,
		ComplianceScore: a.ComplianceScore,
		KeyFindings: []string{
			fmt.Sprintf("Fund classification: %s", a.TargetArticle),
			fmt.Sprintf("Overall compliance score: %d%%", a.ComplianceScore),
			fmt.Sprintf("Risk level: %s", a.RiskLevel),
			fmt.Sprintf("Open compliance issues: %d", len(issues)),
		},
		CriticalIssues: issues,
		NextSteps:      nextSteps,
	}
}

var overviewSections = []struct {
	category    string
	key         string
	description string
	passText    string
	failText    string
}{
	{"Article Classification", "articleCompliance", "Fund classification meets SFDR article requirements", "Compliant", "Non-Compliant"},
	{"PAI Indicators", "paiConsistency", "Principal Adverse Impact indicators properly documented", "Compliant", "Non-Compliant"},
	{"EU Taxonomy Alignment", "taxonomyAlignment", "EU Taxonomy alignment calculation and disclosure", "Compliant", "Incomplete"},
	{"Data Quality", "dataQuality", "Data coverage and quality assessment", "Satisfactory", "Needs Improvement"},
	{"Disclosure Completeness", "disclosureCompleteness", "Required disclosure statements and documentation", "Complete", "Incomplete"},
}

func complianceOverview(issues []string) map[string]SectionStatus {
	overview := make(map[string]SectionStatus, len(overviewSections))
	for _, section := range overviewSections {
		status := section.passText
		for _, issue := range issues {
			if strings.HasPrefix(issue, section.category) {
				status = section.failText
			}
		}
		overview[section.key] = SectionStatus{
			Status:      status,
			Description: section.description,
		}
	}
	return overview
}

func recommendationPlan(result classification.Result, issues []string) RecommendationPlan {
	immediate := make([]Recommendation, 0, len(issues))
	for _, issue := range issues {
		immediate = append(immediate, Recommendation{
			Priority: "High",
			Action:   "Address: " + issue,
			Timeline: "Within 30 days",
			Impact:   "Critical for compliance",
		})
	}

	shortTerm := make([]Recommendation, 0, 3)
	for i, rec := range result.Recommendations {
		if i == 3 {
			break
		}
		shortTerm = append(shortTerm, Recommendation{
			Priority: "Medium",
			Action:   rec,
			Timeline: "1-3 months",
			Impact:   "Improves compliance quality",
		})
	}

	return RecommendationPlan{
		Immediate: immediate,
		ShortTerm: shortTerm,
		LongTerm: []Recommendation{
			{
				Priority: "Low",
				Action:   "Implement automated compliance monitoring",
				Timeline: "6-12 months",
				Impact:   "Reduces ongoing compliance burden",
			},
			{
				Priority: "Low",
				Action:   "Regular SFDR training for the investment team",
				Timeline: "Ongoing",
				Impact:   "Maintains compliance culture",
			},
		},
	}
}

func paiAnalysis(req classification.Request) *PAIAnalysis {
	provided := len(req.PAIIndicators)
	summary := "No adverse impact narrative provided"
	if req.PrincipalAdverseImpacts != "" {
		summary = req.PrincipalAdverseImpacts
	}

	return &PAIAnalysis{
		MandatoryTotal:    mandatoryPAICount,
		ProvidedCount:     provided,
		Completeness:      fmt.Sprintf("%d%%", provided*100/mandatoryPAICount),
		DisclosureSummary: summary,
	}
}

func taxonomyAnalysis(req classification.Request) *TaxonomyAnalysis {
	if req.TaxonomyAlignment == "" {
		return &TaxonomyAnalysis{
			Reported:  false,
			Statement: "EU Taxonomy alignment not reported",
		}
	}
	return &TaxonomyAnalysis{
		Reported:  true,
		Statement: req.TaxonomyAlignment,
	}
}

func appendices() Appendices {
	return Appendices{
		RegulatoryReferences: []string{
			"SFDR Regulation (EU) 2019/2088",
			"Commission Delegated Regulation (EU) 2022/1288",
			"ESMA Guidelines on SFDR Article 8 and 9",
			"EU Taxonomy Regulation (EU) 2020/852",
		},
		Glossary: map[string]string{
			"SFDR":      "Sustainable Finance Disclosure Regulation",
			"PAI":       "Principal Adverse Impact",
			"DNSH":      "Do No Significant Harm",
			"Article 6": "Financial products that do not promote environmental or social characteristics",
			"Article 8": "Financial products that promote environmental or social characteristics",
			"Article 9": "Financial products with sustainable investment as their objective",
		},
		Methodology: "Generated by the Navigator compliance validation engine applying SFDR and related delegated acts.",
	}
}

// charts builds the score gauge and the per-area issue distribution.
// Issues are attributed to overview sections by their category prefix.
func charts(score int, issues []string) *Charts {
	distribution := make([]ChartSlice, 0, len(overviewSections))
	for _, section := range overviewSections {
		count := 0
		for _, issue := range issues {
			if strings.HasPrefix(issue, section.category) {
				count++
			}
		}
		if count > 0 {
			distribution = append(distribution, ChartSlice{
				Label: section.category,
				Value: count,
			})
		}
	}

	return &Charts{
		ComplianceScore: Gauge{
			Type:  "gauge",
			Value: score,
			Max:   100,
			Thresholds: []GaugeThreshold{
				{Value: 60, Label: "Non-Compliant"},
				{Value: 80, Label: "Partially Compliant"},
				{Value: 100, Label: "Compliant"},
			},
		},
		IssueDistribution: distribution,
	}
}
