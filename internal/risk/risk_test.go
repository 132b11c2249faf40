package risk_test

import (
	"testing"

	"github.com/synapses/navigator/internal/classification"
	"github.com/synapses/navigator/internal/config"
	"github.com/synapses/navigator/internal/risk"
)

func classify(t *testing.T, req classification.Request) classification.Result {
	t.Helper()
	cfg := config.ScoringConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize scoring config: %v", err)
	}
	return classification.NewEngine(cfg).Classify(req)
}

func completeRequest() classification.Request {
	indicators := make([]string, 18)
	for i := range indicators {
		indicators[i] = "indicator"
	}
	return classification.Request{
		ProductName:              "Complete Fund",
		ProductType:              "UCITS",
		Description:              "Fully disclosed submission.",
		InvestmentStrategy:       "ESG integration",
		SustainabilityObjectives: []string{"climate"},
		PrincipalAdverseImpacts:  "GHG tracked",
		TaxonomyAlignment:        "40% aligned",
		PAIIndicators:            indicators,
		RiskProfile:              classification.RiskProfileMedium,
	}
}

func TestAssessCompleteSubmissionIsLowRisk(t *testing.T) {
	req := completeRequest()
	profile := risk.Assess(req, classify(t, req))

	if profile.Level != classification.RiskLow {
		t.Errorf("level: got %s, want Low (score %d)", profile.Level, profile.OverallScore)
	}
	if len(profile.Categories) != 5 {
		t.Fatalf("categories: got %d, want 5", len(profile.Categories))
	}
	for _, c := range profile.Categories {
		if c.Score != 0 {
			t.Errorf("category %s: got score %d, want 0 (findings: %v)", c.Name, c.Score, c.Findings)
		}
	}
}

func TestAssessSparseSubmissionScoresHigher(t *testing.T) {
	sparse := classification.Request{
		ProductName: "Sparse Fund",
		Description: "Minimal submission.",
	}
	complete := completeRequest()

	sparseProfile := risk.Assess(sparse, classify(t, sparse))
	completeProfile := risk.Assess(complete, classify(t, complete))

	if sparseProfile.OverallScore <= completeProfile.OverallScore {
		t.Errorf("sparse submission should score higher: sparse %d, complete %d",
			sparseProfile.OverallScore, completeProfile.OverallScore)
	}
}

func TestAssessOverallScoreIsMeanOfCategories(t *testing.T) {
	req := classification.Request{
		ProductName:   "Mean Fund",
		Description:   "Checks the aggregate calculation.",
		TargetArticle: classification.Article9,
	}
	profile := risk.Assess(req, classify(t, req))

	total := 0
	for _, c := range profile.Categories {
		total += c.Score
		if c.Score < 0 || c.Score > 100 {
			t.Errorf("category %s score out of range: %d", c.Name, c.Score)
		}
	}
	if want := total / len(profile.Categories); profile.OverallScore != want {
		t.Errorf("overall score: got %d, want %d", profile.OverallScore, want)
	}
}

func TestAssessTopRisksSortedByScore(t *testing.T) {
	req := classification.Request{
		ProductName:   "Sorted Fund",
		Description:   "Checks risk ordering.",
		TargetArticle: classification.Article8,
	}
	profile := risk.Assess(req, classify(t, req))

	if len(profile.TopRisks) != 5 {
		t.Fatalf("top risks: got %d, want 5", len(profile.TopRisks))
	}

	byName := map[string]int{}
	for _, c := range profile.Categories {
		byName[c.Name] = c.Score
	}
	for i := 1; i < len(profile.TopRisks); i++ {
		if byName[profile.TopRisks[i-1].Category] < byName[profile.TopRisks[i].Category] {
			t.Errorf("risks not sorted by score at index %d", i)
		}
	}
}

func TestAssessIncludesStandingMitigations(t *testing.T) {
	req := completeRequest()
	profile := risk.Assess(req, classify(t, req))

	found := map[string]bool{}
	for _, m := range profile.Mitigations {
		found[m.Priority] = true
	}
	if !found["Long-term"] || !found["Ongoing"] {
		t.Errorf("expected standing mitigations, got %+v", profile.Mitigations)
	}
}

func TestAssessNextReviewIsSetOut(t *testing.T) {
	req := completeRequest()
	profile := risk.Assess(req, classify(t, req))

	if !profile.NextReview.After(profile.AssessedAt) {
		t.Error("next review date should be after the assessment date")
	}
}
