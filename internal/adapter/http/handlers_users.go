package http

import (
	"net/http"

	"github.com/arriendo/arriendo/internal/domain/user"
	"github.com/arriendo/arriendo/internal/middleware"
)

// ListUsers returns all principals of the resolved tenant. Admin only.
// GET /{slug}/users
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	users, err := sess.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, err, "users not found")
		return
	}
	if users == nil {
		users = []user.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser creates a principal with an explicit role. Admin only; this is
// the one surface that can mint additional admins.
// POST /{slug}/users
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.CreateRequest](w, r, h.cfg.Server.BodyLimit)
	if !ok {
		return
	}

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
