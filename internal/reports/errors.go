package reports

import (
	"errors"
	"net/http"
)

// Domain errors for report operations.
var (
	ErrNotFound           = errors.New("report not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrDuplicate          = errors.New("report already exists")
	ErrAuthRequired       = errors.New("authentication required")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUnknownType        = errors.New("unknown report type")
)

// MapHTTPStatus maps report domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrAuthRequired) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAssessmentNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrUnknownType) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
