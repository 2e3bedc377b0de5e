package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arriendo/arriendo/internal/domain"
	"github.com/arriendo/arriendo/internal/domain/tenant"
	"github.com/arriendo/arriendo/internal/domain/user"
	"github.com/arriendo/arriendo/internal/gate"
	"github.com/arriendo/arriendo/internal/port/database"
	"github.com/arriendo/arriendo/internal/port/events"
)

// TenantService manages tenant lifecycle: provisioning, lookup, activation,
// and removal. It owns the pre-checks that must happen before any schema
// work begins; the Provisioner owns the transactional build itself.
type TenantService struct {
	registry database.Registry
	prov     database.Provisioner
	auth     *AuthService
	events   events.Publisher
	gate     *gate.Gate
}

// Option configures a TenantService.
type Option func(*TenantService)

// WithEvents sets the lifecycle event publisher.
func WithEvents(pub events.Publisher) Option {
	return func(s *TenantService) { s.events = pub }
}

// WithGate caps how many schema builds and drops may run concurrently.
func WithGate(g *gate.Gate) Option {
	return func(s *TenantService) { s.gate = g }
}

// NewTenantService creates a new TenantService.
func NewTenantService(registry database.Registry, prov database.Provisioner, auth *AuthService, opts ...Option) *TenantService {
	s := &TenantService{
		registry: registry,
		prov:     prov,
		auth:     auth,
		events:   events.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish emits a lifecycle event. Failures are logged, never surfaced: by
// the time an event fires, the database change is already committed.
func (s *TenantService) publish(ctx context.Context, subject string, t *tenant.Tenant) {
	err := s.events.Publish(ctx, subject, events.TenantEvent{
		Slug:        t.Slug,
		SchemaName:  t.SchemaName,
		CompanyName: t.CompanyName,
		At:          time.Now().UTC(),
	})
	if err != nil {
		slog.Warn("lifecycle event not published", "subject", subject, "slug", t.Slug, "error", err)
	}
}

// ProvisionResult is returned to the administrative caller after a
// successful provisioning: the new registry record, the admin principal
// (hash omitted by the user JSON shape), and a ready-to-use access token.
type ProvisionResult struct {
	Tenant      *tenant.Tenant `json:"tenant"`
	Admin       *user.User     `json:"admin"`
	AccessToken string         `json:"access_token"`
}

// Provision creates a fully usable tenant: registry row, private schema with
// all structural objects and seeds, and the administrative principal. The
// slug is taken from the request or derived from the company name.
func (s *TenantService) Provision(ctx context.Context, req tenant.CreateRequest) (*ProvisionResult, error) {
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, errors.New("company_name is required")
	}
	adminReq := user.CreateRequest{
		Email:    req.AdminEmail,
		Name:     req.AdminName,
		Phone:    req.AdminPhone,
		Password: req.AdminPassword,
	}
	if err := adminReq.Validate(); err != nil {
		return nil, fmt.Errorf("admin: %w", err)
	}

	slug := req.Slug
	if slug == "" {
		slug = tenant.Slugify(req.CompanyName)
	}
	if err := tenant.ValidateSlug(slug); err != nil {
		return nil, err
	}

	// Cheap pre-checks before any schema work. Races slipping past them are
	// caught again by the registry's unique constraints inside the
	// provisioning transaction.
	if _, err := s.registry.LookupBySlug(ctx, slug); err == nil {
		return nil, fmt.Errorf("tenant %q: %w", slug, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.registry.LookupByAdminEmail(ctx, req.AdminEmail); err == nil {
		return nil, fmt.Errorf("admin email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = tenant.DefaultCurrency
	}
	locale := req.Locale
	if locale == "" {
		locale = tenant.DefaultLocale
	}

	t := &tenant.Tenant{
		ID:          uuid.NewString(),
		Slug:        slug,
		SchemaName:  tenant.SchemaFor(slug),
		CompanyName: req.CompanyName,
		Currency:    currency,
		Locale:      locale,
		AdminEmail:  req.AdminEmail,
		IsActive:    true,
	}

	hash, err := s.auth.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, err
	}
	admin := &user.User{
		ID:           uuid.NewString(),
		Email:        req.AdminEmail,
		Name:         req.AdminName,
		Phone:        req.AdminPhone,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		IsActive:     true,
	}

	if err := s.gate.Run(ctx, func() error { return s.prov.Provision(ctx, t, admin) }); err != nil {
		return nil, err
	}
	s.publish(ctx, events.SubjectTenantProvisioned, t)

	token, err := s.auth.SignToken(admin, t.Slug)
	if err != nil {
		return nil, err
	}

	return &ProvisionResult{Tenant: t, Admin: admin, AccessToken: token}, nil
}

// Get returns a tenant by ID.
func (s *TenantService) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	return s.registry.GetByID(ctx, id)
}

// GetBySlug returns a tenant by slug.
func (s *TenantService) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	return s.registry.LookupBySlug(ctx, slug)
}

// List returns all tenants.
func (s *TenantService) List(ctx context.Context) ([]tenant.Tenant, error) {
	return s.registry.List(ctx)
}

// ListActive returns tenants accepting business writes.
func (s *TenantService) ListActive(ctx context.Context) ([]tenant.Tenant, error) {
	return s.registry.ListActive(ctx)
}

// SetActive toggles a tenant's active flag.
func (s *TenantService) SetActive(ctx context.Context, id string, active bool) (*tenant.Tenant, error) {
	t, err := s.registry.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	if !active {
		s.publish(ctx, events.SubjectTenantDeactivated, t)
	}
	return t, nil
}

// Remove destroys a tenant's schema and registry record, then flushes the
// slug from any lookup cache layered over the registry so it stops
// resolving immediately.
func (s *TenantService) Remove(ctx context.Context, id string) error {
	t, err := s.registry.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gate.Run(ctx, func() error { return s.prov.Drop(ctx, t) }); err != nil {
		return err
	}
	if f, ok := s.registry.(interface{ Forget(slug string) }); ok {
		f.Forget(t.Slug)
	}
	s.publish(ctx, events.SubjectTenantDropped, t)
	return nil
}
