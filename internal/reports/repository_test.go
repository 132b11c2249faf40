package reports

import (
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/synapses/navigator/pkg/pagination"
)

func testRepo(t *testing.T) System {
	t.Helper()
	return New(nil, slog.Default(), pagination.Config{}, 720*time.Hour)
}

func TestCreateRequiresUser(t *testing.T) {
	sys := testRepo(t)

	_, err := sys.Create(t.Context(), "", uuid.New(), TypeFullCompliance, true)
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("got %v, want ErrAuthRequired", err)
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	sys := testRepo(t)

	_, err := sys.Create(t.Context(), "user-1", uuid.New(), "weekly_digest", true)
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("got %v, want ErrUnknownType", err)
	}
}

func TestUserScopedOperationsRequireUser(t *testing.T) {
	sys := testRepo(t)
	id := uuid.New()

	t.Run("list", func(t *testing.T) {
		_, err := sys.List(t.Context(), "", pagination.PageRequest{}, Filters{})
		if !errors.Is(err, ErrAuthRequired) {
			t.Fatalf("got %v, want ErrAuthRequired", err)
		}
	})

	t.Run("find", func(t *testing.T) {
		_, err := sys.Find(t.Context(), "", id)
		if !errors.Is(err, ErrAuthRequired) {
			t.Fatalf("got %v, want ErrAuthRequired", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		err := sys.Delete(t.Context(), "", id)
		if !errors.Is(err, ErrAuthRequired) {
			t.Fatalf("got %v, want ErrAuthRequired", err)
		}
	})
}

func TestValidType(t *testing.T) {
	valid := []string{
		TypeFullCompliance,
		TypePAISummary,
		TypeTaxonomyAlignment,
		TypeRiskAssessment,
	}
	for _, v := range valid {
		if !ValidType(v) {
			t.Errorf("%q should be valid", v)
		}
	}

	if ValidType("") || ValidType("summary") {
		t.Error("unexpected valid type")
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"auth required", ErrAuthRequired, http.StatusUnauthorized},
		{"report not found", ErrNotFound, http.StatusNotFound},
		{"assessment not found", ErrAssessmentNotFound, http.StatusNotFound},
		{"duplicate", ErrDuplicate, http.StatusConflict},
		{"invalid request", ErrInvalidRequest, http.StatusBadRequest},
		{"unknown type", ErrUnknownType, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
