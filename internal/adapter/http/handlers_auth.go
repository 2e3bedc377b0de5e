package http

import (
	"net/http"

	"github.com/arriendo/arriendo/internal/domain/user"
	"github.com/arriendo/arriendo/internal/middleware"
)

// Login authenticates a principal inside the resolved tenant.
// POST /{slug}/auth/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.LoginRequest](w, r, h.cfg.Server.BodyLimit)
	if !ok {
		return
	}

	tc := middleware.TenantFromContext(r.Context())
	sess := middleware.SessionFromContext(r.Context())

	resp, err := h.auth.Login(r.Context(), sess, tc.Slug, req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Register creates a resident principal in the resolved tenant.
// POST /{slug}/auth/register
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.CreateRequest](w, r, h.cfg.Server.BodyLimit)
	if !ok {
		return
	}
	// The public surface never creates admins; that path goes through
	// provisioning or an admin's user management.
	req.Role = user.RoleResident

	sess := middleware.SessionFromContext(r.Context())
	u, err := h.auth.Register(r.Context(), sess, req)
	if err != nil {
		if isDomainSentinel(err) {
			writeDomainError(w, err, "tenant not found")
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Me returns the authenticated principal's record.
// GET /{slug}/auth/me
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	sess := middleware.SessionFromContext(r.Context())

	u, err := sess.GetUser(r.Context(), tc.PrincipalID)
	if err != nil {
		writeDomainError(w, err, "principal not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// ChangePassword rotates the authenticated principal's password.
// POST /{slug}/auth/change-password
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}](w, r, h.cfg.Server.BodyLimit)
	if !ok {
		return
	}

	tc := middleware.TenantFromContext(r.Context())
	sess := middleware.SessionFromContext(r.Context())

	if err := h.auth.ChangePassword(r.Context(), sess, tc.PrincipalID, req.CurrentPassword, req.NewPassword); err != nil {
		if isDomainSentinel(err) {
			writeDomainError(w, err, "principal not found")
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
