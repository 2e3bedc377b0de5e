// Package database defines the ports between the isolation core and its
// PostgreSQL adapter: the global tenant registry, the per-request bound
// session, and the provisioner that builds tenant schemas.
package database

import (
	"context"

	"github.com/arriendo/arriendo/internal/domain/property"
	"github.com/arriendo/arriendo/internal/domain/tenant"
	"github.com/arriendo/arriendo/internal/domain/user"
)

// Registry is the port for the global tenant table (public.tenant). It is
// always addressed through the fixed public schema and therefore reachable
// regardless of any session's current binding.
type Registry interface {
	LookupBySlug(ctx context.Context, slug string) (*tenant.Tenant, error)
	GetByID(ctx context.Context, id string) (*tenant.Tenant, error)
	LookupByAdminEmail(ctx context.Context, email string) (*tenant.Tenant, error)
	List(ctx context.Context) ([]tenant.Tenant, error)
	ListActive(ctx context.Context) ([]tenant.Tenant, error)
	SetActive(ctx context.Context, id string, active bool) (*tenant.Tenant, error)
}

// Session is a database session bound to exactly one tenant schema (or to
// the tenant-less public baseline). All queries run with unqualified table
// names resolved inside the bound schema. Release must always be called;
// leaked bindings are neutralized anyway by the pool's reset-on-acquire.
type Session interface {
	// Schema returns the schema this session is bound to ("public" when no
	// tenant was resolved).
	Schema() string

	// VerifyPrincipal checks that the principal exists inside the bound
	// schema; returns domain.ErrPrincipalUnknown when it does not.
	VerifyPrincipal(ctx context.Context, principalID string) error

	// Principals.
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
	CreateUser(ctx context.Context, u *user.User) error
	ListUsers(ctx context.Context) ([]user.User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error

	// Public catalog reads.
	ListPropertyTypes(ctx context.Context) ([]property.Type, error)
	ListPropertySubtypes(ctx context.Context) ([]property.Subtype, error)
	ListProperties(ctx context.Context) ([]property.Summary, error)

	Release()
}

// SessionBinder acquires a pooled connection and binds it to the resolved
// tenant for the lifetime of one request. A nil tc yields a session bound to
// the public baseline only.
type SessionBinder interface {
	Bind(ctx context.Context, tc *tenant.Context) (Session, error)
}

// Provisioner creates and destroys tenant schemas. Provision is atomic from
// the caller's point of view: afterward the tenant is fully usable (registry
// row, schema, structural objects, seeds, grants, admin principal) or
// nothing persists.
type Provisioner interface {
	Provision(ctx context.Context, t *tenant.Tenant, admin *user.User) error
	Drop(ctx context.Context, t *tenant.Tenant) error
}
