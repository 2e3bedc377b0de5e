package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arriendo/arriendo/internal/domain"
	"github.com/arriendo/arriendo/internal/domain/tenant"
	"github.com/arriendo/arriendo/internal/port/database"
	"github.com/arriendo/arriendo/internal/service"
)

type tenantCtxKey struct{}

// reservedSlugs are path segments that can never identify a tenant. The
// router keeps them on separate mounts; the resolver rejects them anyway so
// a registry row with one of these slugs could never shadow a global route.
var reservedSlugs = map[string]bool{
	"health":  true,
	"auth":    true,
	"api":     true,
	"docs":    true,
	"metrics": true,
	"tenants": true,
}

// ReservedSlug reports whether a slug is excluded from tenant resolution.
func ReservedSlug(slug string) bool {
	return reservedSlugs[slug]
}

// TenantResolver returns middleware that resolves the {slug} URL segment
// against the registry and installs a tenant.Context. The URL is the
// authoritative tenant reference: a bearer credential is optional, but when
// one is present and pinned to a different tenant the request is rejected
// before any lookup result could leak. Invalid or absent credentials leave
// the request anonymous rather than failing it; guarded endpoints enforce
// authentication themselves.
func TenantResolver(authSvc *service.AuthService, registry database.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := chi.URLParam(r, "slug")
			if slug == "" || ReservedSlug(slug) {
				http.Error(w, `{"error":"tenant not found"}`, http.StatusNotFound)
				return
			}
			if err := tenant.ValidateSlug(slug); err != nil {
				http.Error(w, `{"error":"tenant not found"}`, http.StatusNotFound)
				return
			}

			var principalID, principalRole string
			if raw := bearerToken(r); raw != "" {
				if claims, ok := authSvc.ParseClaims(raw); ok {
					if claims.TenantSlug != slug {
						http.Error(w, `{"error":"`+domain.ErrTenantMismatch.Error()+`"}`, http.StatusUnauthorized)
						return
					}
					principalID = claims.Subject
					principalRole = claims.Role
				}
			}

			t, err := registry.LookupBySlug(r.Context(), slug)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					http.Error(w, `{"error":"tenant not found"}`, http.StatusNotFound)
					return
				}
				http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
				return
			}

			tc := &tenant.Context{
				Slug:          t.Slug,
				SchemaName:    t.SchemaName,
				CompanyName:   t.CompanyName,
				Currency:      t.Currency,
				Locale:        t.Locale,
				IsActive:      t.IsActive,
				PrincipalID:   principalID,
				PrincipalRole: principalRole,
			}
			ctx := context.WithValue(r.Context(), tenantCtxKey{}, tc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantFromContext returns the resolved tenant context, or nil outside the
// tenant-scoped route group.
func TenantFromContext(ctx context.Context) *tenant.Context {
	tc, _ := ctx.Value(tenantCtxKey{}).(*tenant.Context)
	return tc
}

// bearerToken extracts the raw token from an Authorization: Bearer header,
// or returns "".
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	raw := strings.TrimPrefix(h, "Bearer ")
	if raw == h {
		return ""
	}
	return raw
}
