package validation

import (
	"regexp"
	"strings"

	"github.com/synapses/navigator/internal/classification"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// SanitizeText strips HTML tags and trims surrounding whitespace. Tags are
// removed repeatedly until the text is stable, so nested constructs like
// "<<b>script>" cannot survive a single pass. Idempotent.
func SanitizeText(text string) string {
	for {
		stripped := tagPattern.ReplaceAllString(text, "")
		if stripped == text {
			break
		}
		text = stripped
	}
	return strings.TrimSpace(text)
}

// Sanitize returns a copy of the request with every free-text field
// sanitized. The original request is not modified.
func Sanitize(req classification.Request) classification.Request {
	sanitized := req
	sanitized.ProductName = SanitizeText(req.ProductName)
	sanitized.ProductType = SanitizeText(req.ProductType)
	sanitized.Description = SanitizeText(req.Description)
	sanitized.InvestmentStrategy = SanitizeText(req.InvestmentStrategy)
	sanitized.PrincipalAdverseImpacts = SanitizeText(req.PrincipalAdverseImpacts)
	sanitized.TaxonomyAlignment = SanitizeText(req.TaxonomyAlignment)

	sanitized.SustainabilityObjectives = sanitizeSlice(req.SustainabilityObjectives)
	sanitized.PAIIndicators = sanitizeSlice(req.PAIIndicators)

	return sanitized
}

func sanitizeSlice(values []string) []string {
	if values == nil {
		return nil
	}

	sanitized := make([]string, 0, len(values))
	for _, v := range values {
		if clean := SanitizeText(v); clean != "" {
			sanitized = append(sanitized, clean)
		}
	}
	return sanitized
}
