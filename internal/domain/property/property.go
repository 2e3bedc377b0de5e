// Package property defines the slice of the rental catalog the isolation
// core exposes publicly. Full property management lives with the business
// handlers; these types exist to exercise bound tenant reads.
package property

import "time"

// Type is a fixed classification seeded into every tenant schema, keyed by a
// natural unique code so provisioning re-runs are idempotent.
type Type struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsActive bool   `json:"is_active"`
}

// Subtype refines a Type (e.g. SINGLE_FAMILY under RESIDENTIAL).
type Subtype struct {
	ID       int64  `json:"id"`
	TypeID   int64  `json:"property_type_id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsActive bool   `json:"is_active"`
}

// Summary is the public catalog view of a property inside the bound tenant.
type Summary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	TypeCode    string    `json:"type_code"`
	SubtypeCode string    `json:"subtype_code"`
	CreatedAt   time.Time `json:"created_at"`
}
