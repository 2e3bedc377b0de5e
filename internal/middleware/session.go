package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/arriendo/arriendo/internal/domain"
	"github.com/arriendo/arriendo/internal/port/database"
)

type sessionCtxKey struct{}

// SessionBind returns middleware that binds a pooled database session to the
// resolved tenant for the lifetime of the request and releases it afterward.
// When the request carries a credential, the principal is cross-checked
// against the bound schema before any handler runs: a token that passed
// signature validation but names a principal the tenant does not know is
// rejected here. Must run after TenantResolver.
func SessionBind(binder database.SessionBinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc := TenantFromContext(r.Context())
			if tc == nil {
				http.Error(w, `{"error":"tenant not resolved"}`, http.StatusInternalServerError)
				return
			}

			sess, err := binder.Bind(r.Context(), tc)
			if err != nil {
				http.Error(w, `{"error":"service unavailable"}`, http.StatusServiceUnavailable)
				return
			}
			defer sess.Release()

			if tc.Authenticated() {
				if err := sess.VerifyPrincipal(r.Context(), tc.PrincipalID); err != nil {
					if errors.Is(err, domain.ErrPrincipalUnknown) {
						http.Error(w, `{"error":"`+domain.ErrPrincipalUnknown.Error()+`"}`, http.StatusUnauthorized)
						return
					}
					http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
					return
				}
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the tenant-bound session, or nil outside the
// tenant-scoped route group.
func SessionFromContext(ctx context.Context) database.Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(database.Session)
	return sess
}
