package auth_test

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/synapses/navigator/internal/auth"
	"github.com/synapses/navigator/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func disabledSystem(t *testing.T) auth.System {
	t.Helper()
	disabled := false
	return auth.New(config.AuthConfig{Enabled: &disabled}, testLogger())
}

func token(t *testing.T, claims map[string]any) string {
	t.Helper()
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	segment := base64.RawURLEncoding.EncodeToString
	return segment([]byte(`{"alg":"none"}`)) + "." + segment(payload) + "." + segment([]byte("sig"))
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		authorize  func(r *http.Request)
		wantStatus int
		wantUser   string
	}{
		{
			name:       "missing header",
			authorize:  func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong scheme",
			authorize: func(r *http.Request) {
				r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "malformed token",
			authorize: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not-a-jwt")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "no subject claim",
			authorize: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token(t, map[string]any{"email": "a@b.c"}))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "valid token",
			authorize: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token(t, map[string]any{
					"sub":   "user-42",
					"email": "user@example.com",
				}))
			},
			wantStatus: http.StatusOK,
			wantUser:   "user-42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if user, ok := auth.FromContext(r.Context()); ok {
					gotUser = user.ID
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := disabledSystem(t).Middleware()(next)

			req := httptest.NewRequest(http.MethodGet, "/api/assessments", nil)
			tt.authorize(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantUser != "" && gotUser != tt.wantUser {
				t.Errorf("user: got %q, want %q", gotUser, tt.wantUser)
			}
		})
	}
}

func TestMiddlewareErrorEnvelope(t *testing.T) {
	handler := disabledSystem(t).Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/assessments", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var parsed map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if parsed["error"] == "" {
		t.Error("expected error message in response body")
	}
}

func TestFromContextEmpty(t *testing.T) {
	if _, ok := auth.FromContext(t.Context()); ok {
		t.Error("expected no user on fresh context")
	}
}
