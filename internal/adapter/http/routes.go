package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arriendo/arriendo/internal/config"
	"github.com/arriendo/arriendo/internal/domain/user"
	"github.com/arriendo/arriendo/internal/middleware"
	"github.com/arriendo/arriendo/internal/port/database"
	"github.com/arriendo/arriendo/internal/service"
)

// pinger is the readiness probe; *pgxpool.Pool satisfies it.
type pinger interface {
	Ping(ctx context.Context) error
}

// Handlers bundles the services the HTTP surface dispatches into.
type Handlers struct {
	cfg      *config.Config
	tenants  *service.TenantService
	auth     *service.AuthService
	registry database.Registry
	binder   database.SessionBinder
	db       pinger
}

// NewHandlers creates the handler set.
func NewHandlers(cfg *config.Config, tenants *service.TenantService, auth *service.AuthService, registry database.Registry, binder database.SessionBinder, db pinger) *Handlers {
	return &Handlers{cfg: cfg, tenants: tenants, auth: auth, registry: registry, binder: binder, db: db}
}

// MountRoutes registers all routes on the given chi router. The URL space
// splits in three: global health, the operator-only provisioning surface
// under /tenants, and everything under /{slug} which runs through tenant
// resolution and session binding before any handler.
func (h *Handlers) MountRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/health/ready", h.HealthReady)

	r.Route("/tenants", func(r chi.Router) {
		r.Use(middleware.RequireAdminKey(h.cfg.Auth.AdminAPIKey))
		r.Post("/", h.ProvisionTenant)
		r.Get("/", h.ListTenants)
		r.Get("/{id}", h.GetTenant)
		r.Patch("/{id}/active", h.SetTenantActive)
		r.Delete("/{id}", h.RemoveTenant)
	})

	r.Route("/{slug}", func(r chi.Router) {
		r.Use(middleware.TenantResolver(h.auth, h.registry))
		r.Use(middleware.SessionBind(h.binder))

		r.Get("/", h.TenantProfile)

		r.Post("/auth/login", h.Login)
		r.Post("/auth/register", h.Register)
		r.With(middleware.RequireAuth).Get("/auth/me", h.Me)
		r.With(middleware.RequireAuth).Post("/auth/change-password", h.ChangePassword)

		r.Get("/catalog/property-types", h.ListPropertyTypes)
		r.Get("/catalog/property-subtypes", h.ListPropertySubtypes)
		r.Get("/properties", h.ListProperties)

		r.With(middleware.RequireRole(user.RoleAdmin)).Get("/users", h.ListUsers)
		r.With(middleware.RequireRole(user.RoleAdmin)).Post("/users", h.CreateUser)
	})
}

// Health reports process liveness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthReady reports database reachability.
func (h *Handlers) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
