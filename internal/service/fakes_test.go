package service

import (
	"context"
	"fmt"

	"github.com/arriendo/arriendo/internal/domain"
	"github.com/arriendo/arriendo/internal/domain/property"
	"github.com/arriendo/arriendo/internal/domain/tenant"
	"github.com/arriendo/arriendo/internal/domain/user"
	"github.com/arriendo/arriendo/internal/port/database"
	"github.com/arriendo/arriendo/internal/port/events"
)

// fakeSession is an in-memory database.Session bound to a single schema.
type fakeSession struct {
	schema   string
	users    map[string]*user.User // keyed by id
	released bool
}

func newFakeSession(schema string) *fakeSession {
	return &fakeSession{schema: schema, users: map[string]*user.User{}}
}

func (f *fakeSession) Schema() string { return f.schema }

func (f *fakeSession) VerifyPrincipal(_ context.Context, principalID string) error {
	if _, ok := f.users[principalID]; !ok {
		return domain.ErrPrincipalUnknown
	}
	return nil
}

func (f *fakeSession) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", domain.ErrNotFound)
}

func (f *fakeSession) GetUser(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user %s: %w", id, domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeSession) CreateUser(_ context.Context, u *user.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user %s: %w", u.Email, domain.ErrConflict)
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeSession) ListUsers(_ context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeSession) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update password for %s: %w", id, domain.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeSession) ListPropertyTypes(context.Context) ([]property.Type, error) {
	return nil, nil
}

func (f *fakeSession) ListPropertySubtypes(context.Context) ([]property.Subtype, error) {
	return nil, nil
}

func (f *fakeSession) ListProperties(context.Context) ([]property.Summary, error) {
	return nil, nil
}

func (f *fakeSession) Release() { f.released = true }

// fakeRegistry is an in-memory database.Registry.
type fakeRegistry struct {
	tenants map[string]*tenant.Tenant // keyed by id
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{tenants: map[string]*tenant.Tenant{}}
}

func (f *fakeRegistry) add(t *tenant.Tenant) {
	cp := *t
	f.tenants[t.ID] = &cp
}

func (f *fakeRegistry) LookupBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	for _, t := range f.tenants {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("tenant %q: %w", slug, domain.ErrNotFound)
}

func (f *fakeRegistry) GetByID(_ context.Context, id string) (*tenant.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRegistry) LookupByAdminEmail(_ context.Context, email string) (*tenant.Tenant, error) {
	for _, t := range f.tenants {
		if t.AdminEmail == email {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("tenant by admin email: %w", domain.ErrNotFound)
}

func (f *fakeRegistry) List(_ context.Context) ([]tenant.Tenant, error) {
	var out []tenant.Tenant
	for _, t := range f.tenants {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeRegistry) ListActive(_ context.Context) ([]tenant.Tenant, error) {
	var out []tenant.Tenant
	for _, t := range f.tenants {
		if t.IsActive {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRegistry) SetActive(_ context.Context, id string, active bool) (*tenant.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
	}
	t.IsActive = active
	cp := *t
	return &cp, nil
}

// fakeProvisioner records calls and mirrors successful provisions into the
// registry, the way the real provisioner's transaction does.
type fakeProvisioner struct {
	registry    *fakeRegistry
	provisioned []string // slugs, in call order
	dropped     []string
	failWith    error
}

func (f *fakeProvisioner) Provision(_ context.Context, t *tenant.Tenant, admin *user.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.provisioned = append(f.provisioned, t.Slug)
	if f.registry != nil {
		f.registry.add(t)
	}
	return nil
}

func (f *fakeProvisioner) Drop(_ context.Context, t *tenant.Tenant) error {
	f.dropped = append(f.dropped, t.Slug)
	if f.registry != nil {
		delete(f.registry.tenants, t.ID)
	}
	return nil
}

// fakePublisher records lifecycle events in call order.
type fakePublisher struct {
	subjects []string
	events   []events.TenantEvent
	failWith error
}

func (f *fakePublisher) Publish(_ context.Context, subject string, event events.TenantEvent) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.subjects = append(f.subjects, subject)
	f.events = append(f.events, event)
	return nil
}

// forgettingRegistry adds the cache-invalidation hook the ristretto
// decorator exposes.
type forgettingRegistry struct {
	*fakeRegistry
	forgotten []string
}

func (f *forgettingRegistry) Forget(slug string) {
	f.forgotten = append(f.forgotten, slug)
}

var (
	_ database.Session     = (*fakeSession)(nil)
	_ database.Registry    = (*fakeRegistry)(nil)
	_ database.Provisioner = (*fakeProvisioner)(nil)
	_ events.Publisher     = (*fakePublisher)(nil)
)
