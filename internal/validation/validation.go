// Package validation sanitizes and validates fund product submissions and
// accompanying document uploads before classification.
package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/synapses/navigator/internal/classification"
)

const (
	MinProductNameLength = 2
	MaxProductNameLength = 200
	MinDescriptionLength = 10
	MaxDescriptionLength = 5000
	MaxOptionalLength    = 2000
)

// Result is the outcome of validating a submission. Sanitized is always
// populated so callers can safely echo input back even on failure.
type Result struct {
	IsValid   bool                   `json:"isValid"`
	Errors    []string               `json:"errors"`
	Sanitized classification.Request `json:"sanitizedData"`
}

// Validate sanitizes every free-text field and enforces per-field length
// constraints. Lengths are counted in characters, not bytes. Constraint
// violations are reported as human-readable error strings; Validate never
// fails outright.
func Validate(req classification.Request) Result {
	sanitized := Sanitize(req)

	errs := []string{}
	if n := utf8.RuneCountInString(sanitized.ProductName); n < MinProductNameLength || n > MaxProductNameLength {
		errs = append(errs, fmt.Sprintf(
			"productName must be between %d and %d characters",
			MinProductNameLength, MaxProductNameLength,
		))
	}
	if n := utf8.RuneCountInString(sanitized.Description); n < MinDescriptionLength || n > MaxDescriptionLength {
		errs = append(errs, fmt.Sprintf(
			"description must be between %d and %d characters",
			MinDescriptionLength, MaxDescriptionLength,
		))
	}

	for field, value := range map[string]string{
		"investmentStrategy":      sanitized.InvestmentStrategy,
		"principalAdverseImpacts": sanitized.PrincipalAdverseImpacts,
		"taxonomyAlignment":       sanitized.TaxonomyAlignment,
	} {
		if utf8.RuneCountInString(value) > MaxOptionalLength {
			errs = append(errs, fmt.Sprintf(
				"%s must not exceed %d characters", field, MaxOptionalLength,
			))
		}
	}

	if sanitized.RiskProfile != "" {
		switch sanitized.RiskProfile {
		case classification.RiskProfileLow, classification.RiskProfileMedium, classification.RiskProfileHigh:
		default:
			errs = append(errs, "riskProfile must be one of: low, medium, high")
		}
	}

	if sanitized.TargetArticle != "" && !sanitized.TargetArticle.Valid() {
		errs = append(errs, "targetArticle must be one of: Article6, Article8, Article9")
	}

	return Result{
		IsValid:   len(errs) == 0,
		Errors:    errs,
		Sanitized: sanitized,
	}
}
