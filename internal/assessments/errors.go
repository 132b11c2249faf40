package assessments

import (
	"errors"
	"net/http"
)

// Domain errors for assessment operations.
var (
	ErrNotFound       = errors.New("assessment not found")
	ErrDuplicate      = errors.New("assessment already exists")
	ErrAuthRequired   = errors.New("authentication required")
	ErrInvalidRequest = errors.New("invalid request")
)

// MapHTTPStatus maps assessment domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrAuthRequired) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
