package http

import (
	"net/http"

	"github.com/arriendo/arriendo/internal/domain/tenant"
	"github.com/arriendo/arriendo/internal/middleware"
)

// ProvisionTenant creates a new tenant with its schema and admin principal.
// POST /tenants
func (h *Handlers) ProvisionTenant(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[tenant.CreateRequest](w, r, h.cfg.Server.BodyLimit)
	if !ok {
		return
	}

	res, err := h.tenants.Provision(r.Context(), req)
	if err != nil {
		if isDomainSentinel(err) {
			writeDomainError(w, err, "tenant not found")
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ListTenants returns all tenants, or only active ones with ?active=true.
// GET /tenants
func (h *Handlers) ListTenants(w http.ResponseWriter, r *http.Request) {
	var (
		tenants []tenant.Tenant
		err     error
	)
	if r.URL.Query().Get("active") == "true" {
		tenants, err = h.tenants.ListActive(r.Context())
	} else {
		tenants, err = h.tenants.List(r.Context())
	}
	if err != nil {
		writeDomainError(w, err, "tenants not found")
		return
	}
	if tenants == nil {
		tenants = []tenant.Tenant{}
	}
	writeJSON(w, http.StatusOK, tenants)
}

// GetTenant returns one tenant by registry ID.
// GET /tenants/{id}
func (h *Handlers) GetTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.tenants.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// SetTenantActive toggles a tenant's active flag.
// PATCH /tenants/{id}/active
func (h *Handlers) SetTenantActive(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Active bool `json:"active"`
	}](w, r, h.cfg.Server.BodyLimit)
	if !ok {
		return
	}

	t, err := h.tenants.SetActive(r.Context(), urlParam(r, "id"), req.Active)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// RemoveTenant drops a tenant's schema and registry record.
// DELETE /tenants/{id}
func (h *Handlers) RemoveTenant(w http.ResponseWriter, r *http.Request) {
	if err := h.tenants.Remove(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TenantProfile returns the resolved tenant's public display metadata.
// GET /{slug}
func (h *Handlers) TenantProfile(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"slug":         tc.Slug,
		"company_name": tc.CompanyName,
		"currency":     tc.Currency,
		"locale":       tc.Locale,
		"is_active":    tc.IsActive,
	})
}
