package http

import (
	"net/http"

	"github.com/arriendo/arriendo/internal/domain/property"
	"github.com/arriendo/arriendo/internal/middleware"
)

// ListPropertyTypes returns the resolved tenant's property classifications.
// GET /{slug}/catalog/property-types
func (h *Handlers) ListPropertyTypes(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	types, err := sess.ListPropertyTypes(r.Context())
	if err != nil {
		writeDomainError(w, err, "catalog not found")
		return
	}
	if types == nil {
		types = []property.Type{}
	}
	writeJSON(w, http.StatusOK, types)
}

// ListPropertySubtypes returns the resolved tenant's property sub-classifications.
// GET /{slug}/catalog/property-subtypes
func (h *Handlers) ListPropertySubtypes(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	subtypes, err := sess.ListPropertySubtypes(r.Context())
	if err != nil {
		writeDomainError(w, err, "catalog not found")
		return
	}
	if subtypes == nil {
		subtypes = []property.Subtype{}
	}
	writeJSON(w, http.StatusOK, subtypes)
}

// ListProperties returns the resolved tenant's property listings.
// GET /{slug}/properties
func (h *Handlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	props, err := sess.ListProperties(r.Context())
	if err != nil {
		writeDomainError(w, err, "properties not found")
		return
	}
	if props == nil {
		props = []property.Summary{}
	}
	writeJSON(w, http.StatusOK, props)
}
