package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/arriendo/arriendo/internal/domain"
)

// RequireAuth rejects requests that did not present a valid credential for
// the resolved tenant. Must run after TenantResolver.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tc := TenantFromContext(r.Context())
		if !tc.Authenticated() {
			http.Error(w, `{"error":"`+domain.ErrUnauthorized.Error()+`"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects authenticated requests whose principal does not hold
// the given role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc := TenantFromContext(r.Context())
			if !tc.Authenticated() {
				http.Error(w, `{"error":"`+domain.ErrUnauthorized.Error()+`"}`, http.StatusUnauthorized)
				return
			}
			if tc.PrincipalRole != role {
				http.Error(w, `{"error":"insufficient role"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminKey guards the provisioning surface with a static operator
// key presented via X-Admin-Key. Tenant credentials are useless here: no
// tenant principal may create or destroy tenants.
func RequireAdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				http.Error(w, `{"error":"admin surface disabled"}`, http.StatusForbidden)
				return
			}
			got := r.Header.Get("X-Admin-Key")
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				http.Error(w, `{"error":"`+domain.ErrUnauthorized.Error()+`"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
