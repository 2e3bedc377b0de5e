package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arriendo/arriendo/internal/domain"
	"github.com/arriendo/arriendo/internal/domain/tenant"
)

// Registry implements database.Registry on the public.tenant table. Every
// query names the table with its schema so the registry stays reachable no
// matter what the current session binding is.
type Registry struct {
	pool *pgxpool.Pool
}

// NewRegistry creates a Registry backed by the given connection pool.
func NewRegistry(pool *pgxpool.Pool) *Registry {
	return &Registry{pool: pool}
}

const tenantColumns = `id, slug, schema_name, company_name, currency, locale, admin_email, is_active, created_at, updated_at`

func scanTenant(row scannable) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(&t.ID, &t.Slug, &t.SchemaName, &t.CompanyName, &t.Currency,
		&t.Locale, &t.AdminEmail, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// LookupBySlug returns the tenant record for a slug.
func (r *Registry) LookupBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM public.tenant WHERE slug = $1`, slug)
	t, err := scanTenant(row)
	if err != nil {
		return nil, notFoundWrap(err, "lookup tenant %s", slug)
	}
	return t, nil
}

// GetByID returns the tenant record for an id.
func (r *Registry) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM public.tenant WHERE id = $1`, id)
	t, err := scanTenant(row)
	if err != nil {
		return nil, notFoundWrap(err, "get tenant %s", id)
	}
	return t, nil
}

// LookupByAdminEmail returns the tenant whose administrative principal was
// registered with the given email. Used to reject duplicate registrations
// before any schema work begins.
func (r *Registry) LookupByAdminEmail(ctx context.Context, email string) (*tenant.Tenant, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM public.tenant WHERE admin_email = $1`, email)
	t, err := scanTenant(row)
	if err != nil {
		return nil, notFoundWrap(err, "lookup tenant by admin email")
	}
	return t, nil
}

// List returns all tenant records, newest first.
func (r *Registry) List(ctx context.Context) ([]tenant.Tenant, error) {
	return r.list(ctx, `SELECT `+tenantColumns+` FROM public.tenant ORDER BY created_at DESC`)
}

// ListActive returns only tenants accepting new business writes.
func (r *Registry) ListActive(ctx context.Context) ([]tenant.Tenant, error) {
	return r.list(ctx, `SELECT `+tenantColumns+` FROM public.tenant WHERE is_active ORDER BY created_at DESC`)
}

func (r *Registry) list(ctx context.Context, query string) ([]tenant.Tenant, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, *t)
	}
	return tenants, rows.Err()
}

// SetActive toggles a tenant's active flag. Inactive tenants stay resolvable
// for reads and audit; rejecting their writes is a business-layer policy.
func (r *Registry) SetActive(ctx context.Context, id string, active bool) (*tenant.Tenant, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE public.tenant SET is_active = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+tenantColumns, id, active)
	t, err := scanTenant(row)
	if err != nil {
		return nil, notFoundWrap(err, "set tenant %s active=%t", id, active)
	}
	return t, nil
}

// insertTenant inserts the registry row inside the provisioning transaction.
// A unique violation on slug, schema_name, or admin_email surfaces as
// domain.ErrConflict: exactly one of two concurrent provisioning attempts
// for the same slug can succeed.
func insertTenant(ctx context.Context, tx execer, t *tenant.Tenant) error {
	row := tx.QueryRow(ctx,
		`INSERT INTO public.tenant (id, slug, schema_name, company_name, currency, locale, admin_email, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		t.ID, t.Slug, t.SchemaName, t.CompanyName, t.Currency, t.Locale, t.AdminEmail, t.IsActive)
	if err := row.Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		return conflictWrap(err, "insert tenant %s", t.Slug)
	}
	return nil
}

// deleteTenant removes the registry row inside the removal transaction.
func deleteTenant(ctx context.Context, tx execer, id string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM public.tenant WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tenant %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete tenant %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
