package classification

import (
	"fmt"
	"strings"
	"time"

	"github.com/synapses/navigator/internal/config"
)

// rule is a single classification rule. Rules are evaluated in declaration
// order; the first rule whose applies predicate matches determines the
// article and base score.
type rule struct {
	name    string
	applies func(req Request) bool
	outcome func(e *Engine, req Request) (Article, int)
}

// Engine classifies fund product submissions. Stateless between calls.
type Engine struct {
	cfg   config.ScoringConfig
	rules []rule
}

// NewEngine creates an Engine with the given scoring parameters.
func NewEngine(cfg config.ScoringConfig) *Engine {
	e := &Engine{cfg: cfg}
	e.rules = []rule{
		{
			name: "explicit target article",
			applies: func(req Request) bool {
				return req.TargetArticle.Valid()
			},
			outcome: func(e *Engine, req Request) (Article, int) {
				return req.TargetArticle, e.baseScore(req.TargetArticle)
			},
		},
		{
			name: "sustainability objectives",
			applies: func(req Request) bool {
				return len(req.SustainabilityObjectives) > 0
			},
			outcome: func(e *Engine, req Request) (Article, int) {
				return Article8, e.cfg.Article8Base
			},
		},
		{
			name: "sustainable investment strategy",
			applies: func(req Request) bool {
				return strings.Contains(strings.ToLower(req.InvestmentStrategy), "sustainable")
			},
			outcome: func(e *Engine, req Request) (Article, int) {
				return Article9, e.cfg.Article9Base
			},
		},
		{
			name: "default",
			applies: func(req Request) bool {
				return true
			},
			outcome: func(e *Engine, req Request) (Article, int) {
				return Article6, e.cfg.Article6Base
			},
		},
	}
	return e
}

// Classify derives an article classification, compliance score, risk level,
// and recommendations from a sanitized request. Pure aside from the result
// timestamp; callers must run input validation first.
func (e *Engine) Classify(req Request) Result {
	article, score := e.evaluate(req)

	level := RiskMedium
	switch req.RiskProfile {
	case RiskProfileLow:
		score += e.cfg.RiskAdjustment
		level = RiskLow
	case RiskProfileHigh:
		score -= e.cfg.RiskAdjustment
		level = RiskHigh
	}

	return Result{
		Classification:  article,
		ComplianceScore: clamp(score, 0, 100),
		RiskLevel:       level,
		Confidence:      e.cfg.Confidence,
		Reasoning:       reasoning(article, req),
		Recommendations: recommendations(article),
		Timestamp:       time.Now().UTC(),
		Validation:      e.check(req, article),
	}
}

func (e *Engine) evaluate(req Request) (Article, int) {
	for _, r := range e.rules {
		if r.applies(req) {
			return r.outcome(e, req)
		}
	}
	// The default rule always applies.
	return Article6, e.cfg.Article6Base
}

func (e *Engine) baseScore(article Article) int {
	switch article {
	case Article8:
		return e.cfg.Article8Base
	case Article9:
		return e.cfg.Article9Base
	default:
		return e.cfg.Article6Base
	}
}

func reasoning(article Article, req Request) string {
	productType := req.ProductType
	if productType == "" {
		productType = "investment"
	}

	strategy := req.InvestmentStrategy
	if strategy == "" {
		strategy = "standard"
	}

	return fmt.Sprintf(
		"Classified as %s based on %s product characteristics and %s investment strategy.",
		article, productType, strategy,
	)
}

func recommendations(article Article) []string {
	switch article {
	case Article8:
		return []string{
			"Clearly document the environmental and social characteristics promoted by the product.",
			"Establish a robust Principal Adverse Impact (PAI) consideration process.",
		}
	case Article9:
		return []string{
			"Verify that the product's sustainable investment objective is clearly defined and measurable.",
			"Confirm the minimum proportion of sustainable investments in the portfolio.",
		}
	default:
		return []string{
			"Consider integrating ESG characteristics to qualify for Article 8 classification.",
		}
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
