package classification

import (
	"fmt"
	"strings"
)

// mandatoryPAICount is the number of mandatory Principal Adverse Impact
// indicators required for a complete PAI disclosure.
const mandatoryPAICount = 18

type check struct {
	category string
	passed   bool
	message  string
}

// check runs the compliance checks for a classified request and collects
// failed check messages as validation issues.
func (e *Engine) check(req Request, article Article) Validation {
	checks := []check{
		checkArticleRequirements(req, article),
		checkPAIIndicators(req),
		checkTaxonomyAlignment(req, article),
		checkDataQuality(req),
		checkDisclosureCompleteness(req, article),
	}

	issues := []string{}
	for _, c := range checks {
		if !c.passed {
			issues = append(issues, fmt.Sprintf("%s: %s", c.category, c.message))
		}
	}

	return Validation{
		IsValid: len(issues) == 0,
		Issues:  issues,
	}
}

func checkArticleRequirements(req Request, article Article) check {
	c := check{category: "Article Classification"}

	switch article {
	case Article8:
		if len(req.SustainabilityObjectives) > 0 {
			c.passed = true
			return c
		}
		c.message = "Article 8 products must specify the sustainability characteristics being promoted"
	case Article9:
		if strings.Contains(strings.ToLower(req.InvestmentStrategy), "sustainable") {
			c.passed = true
			return c
		}
		c.message = "Article 9 products must have sustainable investment as the primary objective"
	default:
		c.passed = true
	}

	return c
}

func checkPAIIndicators(req Request) check {
	c := check{category: "PAI Indicators"}

	if len(req.PAIIndicators) == 0 {
		c.message = "Principal Adverse Impact indicators not provided"
		return c
	}
	if len(req.PAIIndicators) < mandatoryPAICount {
		c.message = fmt.Sprintf(
			"missing PAI indicators: %d of %d mandatory indicators provided",
			len(req.PAIIndicators), mandatoryPAICount,
		)
		return c
	}

	c.passed = true
	return c
}

func checkTaxonomyAlignment(req Request, article Article) check {
	c := check{category: "EU Taxonomy Alignment"}

	if article != Article9 {
		// Alignment reporting is optional outside Article 9.
		c.passed = true
		return c
	}
	if req.TaxonomyAlignment == "" {
		c.message = "EU Taxonomy alignment not reported"
		return c
	}

	c.passed = true
	return c
}

func checkDataQuality(req Request) check {
	c := check{category: "Data Quality"}

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

	coverage := filled * 100 / len(fields)
	if coverage >= 80 {
		c.passed = true
		return c
	}
	if coverage >= 60 {
		c.message = fmt.Sprintf("data coverage %d%% is acceptable but below the 80%% target", coverage)
		return c
	}

	c.message = fmt.Sprintf("data coverage %d%% is insufficient for reliable analysis", coverage)
	return c
}

func checkDisclosureCompleteness(req Request, article Article) check {
	c := check{category: "Disclosure Completeness"}

	missing := []string{}
	if req.InvestmentStrategy == "" {
		missing = append(missing, "investmentStrategy")
	}
	if req.RiskProfile == "" {
		missing = append(missing, "riskProfile")
	}
	if article != Article6 && len(req.SustainabilityObjectives) == 0 {
		missing = append(missing, "sustainabilityObjectives")
	}

	if len(missing) > 0 {
		c.message = "missing required disclosure fields: " + strings.Join(missing, ", ")
		return c
	}

	c.passed = true
	return c
}
