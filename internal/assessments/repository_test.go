package assessments

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/synapses/navigator/internal/classification"
	"github.com/synapses/navigator/pkg/pagination"
)

func testRepo(t *testing.T) System {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(nil, nil, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func TestPersistRequiresUser(t *testing.T) {
	// A nil database proves no write is attempted before the precondition.
	sys := testRepo(t)

	_, err := sys.Persist(
		t.Context(),
		"",
		classification.Request{ProductName: "Fund", Description: "Valid description."},
		classification.Result{Classification: classification.Article6},
	)

	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("got %v, want ErrAuthRequired", err)
	}
}

func TestUserScopedOperationsRequireUser(t *testing.T) {
	sys := testRepo(t)

	if _, err := sys.List(t.Context(), "", pagination.PageRequest{}, Filters{}); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("List: got %v, want ErrAuthRequired", err)
	}
	if _, err := sys.Find(t.Context(), "", uuid.New()); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("Find: got %v, want ErrAuthRequired", err)
	}
	if err := sys.Delete(t.Context(), "", uuid.New()); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("Delete: got %v, want ErrAuthRequired", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "auth required", err: ErrAuthRequired, want: http.StatusUnauthorized},
		{name: "not found", err: ErrNotFound, want: http.StatusNotFound},
		{name: "duplicate", err: ErrDuplicate, want: http.StatusConflict},
		{name: "invalid request", err: ErrInvalidRequest, want: http.StatusBadRequest},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEntityIDFormat(t *testing.T) {
	id := entityID()
	if len(id) <= len("product_") || id[:len("product_")] != "product_" {
		t.Errorf("unexpected entity id format: %s", id)
	}
}

func TestEntityIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := entityID()
		if seen[id] {
			t.Fatalf("duplicate entity id generated: %s", id)
		}
		seen[id] = true
	}
}
