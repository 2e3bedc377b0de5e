// Package tenant defines the tenant registry domain model. A tenant is one
// property-management company; its business data lives in a private
// PostgreSQL schema recorded here, never in the registry itself.
package tenant

import "time"

// Tenant is one row of the global registry (public.tenant). SchemaName is
// derived from Slug at provisioning time and never recomputed afterward;
// rotating a slug requires an explicit migration, not an update here.
type Tenant struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	SchemaName  string    `json:"schema_name"`
	CompanyName string    `json:"company_name"`
	Currency    string    `json:"currency"`
	Locale      string    `json:"locale"`
	AdminEmail  string    `json:"admin_email"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRequest holds the fields required to provision a new tenant together
// with its administrative principal. Slug is optional; when empty it is
// derived from CompanyName.
type CreateRequest struct {
	Slug          string `json:"slug,omitempty"`
	CompanyName   string `json:"company_name"`
	Currency      string `json:"currency,omitempty"`
	Locale        string `json:"locale,omitempty"`
	AdminName     string `json:"admin_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
	AdminPhone    string `json:"admin_phone,omitempty"`
}

// Defaults applied when the caller omits display metadata.
const (
	DefaultCurrency = "BOB"
	DefaultLocale   = "es-BO"
)
