package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arriendo/arriendo/internal/domain/tenant"
	"github.com/arriendo/arriendo/internal/domain/user"
)

func okHandler() (http.Handler, *bool) {
	ran := new(bool)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { *ran = true }), ran
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name     string
		tc       *tenant.Context
		wantCode int
		wantRun  bool
	}{
		{"authenticated", &tenant.Context{Slug: "acme", PrincipalID: "u-1"}, http.StatusOK, true},
		{"anonymous", &tenant.Context{Slug: "acme"}, http.StatusUnauthorized, false},
		{"no tenant context", nil, http.StatusUnauthorized, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, ran := okHandler()
			var handler http.Handler = RequireAuth(inner)
			if tt.tc != nil {
				handler = withTenant(tt.tc, handler)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if *ran != tt.wantRun {
				t.Errorf("handler ran = %v, want %v", *ran, tt.wantRun)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		tc       *tenant.Context
		wantCode int
	}{
		{"admin allowed", &tenant.Context{PrincipalID: "u-1", PrincipalRole: user.RoleAdmin}, http.StatusOK},
		{"resident forbidden", &tenant.Context{PrincipalID: "u-2", PrincipalRole: user.RoleResident}, http.StatusForbidden},
		{"anonymous unauthorized", &tenant.Context{}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, _ := okHandler()
			handler := withTenant(tt.tc, RequireRole(user.RoleAdmin)(inner))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestRequireAdminKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		header   string
		wantCode int
	}{
		{"correct key", "topsecret", "topsecret", http.StatusOK},
		{"wrong key", "topsecret", "guess", http.StatusUnauthorized},
		{"missing header", "topsecret", "", http.StatusUnauthorized},
		{"unconfigured key disables surface", "", "anything", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, _ := okHandler()
			handler := RequireAdminKey(tt.key)(inner)

			req := httptest.NewRequest(http.MethodPost, "/tenants", http.NoBody)
			if tt.header != "" {
				req.Header.Set("X-Admin-Key", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestRequestIDGenerated(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	respID := rec.Header().Get("X-Request-ID")
	if len(respID) != 32 {
		t.Errorf("expected 32-char hex ID, got %d chars: %q", len(respID), respID)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	const existingID = "my-custom-id-123"

	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("X-Request-ID", existingID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") != existingID {
		t.Errorf("expected %q in response header, got %q", existingID, rec.Header().Get("X-Request-ID"))
	}
}
