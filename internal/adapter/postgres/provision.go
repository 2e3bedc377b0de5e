package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	telemetry "github.com/arriendo/arriendo/internal/adapter/otel"
	"github.com/arriendo/arriendo/internal/domain"
	"github.com/arriendo/arriendo/internal/domain/tenant"
	"github.com/arriendo/arriendo/internal/domain/user"
)

// execer is the subset of pgx.Tx used by the registry row helpers.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// identRegex constrains the identifiers interpolated into catalog SQL.
// Schema names come from SchemaFor over a validated slug and the role from
// operator config, but both pass through here before touching DDL.
var identRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Provisioner creates and destroys tenant schemas by walking the object
// catalog inside a single transaction with the registry row.
type Provisioner struct {
	pool    *pgxpool.Pool
	role    string
	metrics *telemetry.Metrics
}

// NewProvisioner creates a Provisioner. role is the database role granted on
// every new schema's current and future objects.
func NewProvisioner(pool *pgxpool.Pool, role string, metrics *telemetry.Metrics) *Provisioner {
	return &Provisioner{pool: pool, role: role, metrics: metrics}
}

// Provision makes the tenant fully usable or leaves nothing behind. It
// inserts the registry row, creates the schema, walks the catalog in
// dependency order, and creates the administrative principal, all in one
// transaction. Losing a uniqueness race on slug/schema/admin email yields
// domain.ErrConflict; any structural failure after the registry insert
// yields domain.ErrProvisioning and rolls the insert back, so a tenant row
// never outlives a half-built schema.
func (p *Provisioner) Provision(ctx context.Context, t *tenant.Tenant, admin *user.User) error {
	ctx, span := telemetry.StartProvisionSpan(ctx, t.Slug, t.SchemaName)
	defer span.End()
	start := time.Now()

	if !identRegex.MatchString(t.SchemaName) {
		return fmt.Errorf("provision %s: unsafe schema name %q", t.Slug, t.SchemaName)
	}
	if !identRegex.MatchString(p.role) {
		return fmt.Errorf("provision %s: unsafe runtime role %q", t.Slug, p.role)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("provision %s: begin: %w", t.Slug, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertTenant(ctx, tx, t); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+t.SchemaName); err != nil {
		return fmt.Errorf("provision %s: create schema: %w", t.Slug, provisioningErr(err))
	}

	for _, obj := range Catalog() {
		if _, err := tx.Exec(ctx, obj.Render(t.SchemaName, p.role)); err != nil {
			return fmt.Errorf("provision %s: %s %s: %w", t.Slug, obj.Kind, obj.Name, provisioningErr(err))
		}
	}

	if err := insertAdmin(ctx, tx, t.SchemaName, admin); err != nil {
		return fmt.Errorf("provision %s: %w", t.Slug, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("provision %s: commit: %w", t.Slug, provisioningErr(err))
	}

	p.metrics.TenantsProvisioned.Add(ctx, 1)
	p.metrics.ProvisionDuration.Record(ctx, time.Since(start).Seconds())
	slog.Info("tenant provisioned", "slug", t.Slug, "schema", t.SchemaName,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// provisioningErr preserves Conflict (the race loser's signal) and tags
// everything else as a provisioning failure.
func provisioningErr(err error) error {
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return fmt.Errorf("%w: %w", domain.ErrProvisioning, err)
}

// insertAdmin creates the administrative principal inside the new schema as
// part of the provisioning transaction, so a committed tenant always has a
// working admin login.
func insertAdmin(ctx context.Context, tx execer, schema string, admin *user.User) error {
	row := tx.QueryRow(ctx,
		`INSERT INTO `+schema+`.users (id, email, password, name, phone, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, true)
		 RETURNING created_at, updated_at`,
		admin.ID, admin.Email, admin.PasswordHash, admin.Name, nullIfEmpty(admin.Phone), user.RoleAdmin)
	if err := row.Scan(&admin.CreatedAt, &admin.UpdatedAt); err != nil {
		return fmt.Errorf("create admin principal: %w", provisioningErr(err))
	}
	admin.Role = user.RoleAdmin
	admin.IsActive = true
	return nil
}

// Drop removes a tenant: the schema (cascading all structural objects)
// together with its registry row in one transaction, so there is never a
// window where the registry claims a tenant whose schema is gone, or the
// reverse.
func (p *Provisioner) Drop(ctx context.Context, t *tenant.Tenant) error {
	if !identRegex.MatchString(t.SchemaName) {
		return fmt.Errorf("drop %s: unsafe schema name %q", t.Slug, t.SchemaName)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("drop %s: begin: %w", t.Slug, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DROP SCHEMA IF EXISTS "+t.SchemaName+" CASCADE"); err != nil {
		return fmt.Errorf("drop %s: drop schema: %w", t.Slug, err)
	}

	if err := deleteTenant(ctx, tx, t.ID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("drop %s: commit: %w", t.Slug, err)
	}

	p.metrics.TenantsDropped.Add(ctx, 1)
	slog.Info("tenant dropped", "slug", t.Slug, "schema", t.SchemaName)
	return nil
}
