package middleware

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/arriendo/arriendo/internal/config"
	"github.com/arriendo/arriendo/internal/domain"
	"github.com/arriendo/arriendo/internal/domain/property"
	"github.com/arriendo/arriendo/internal/domain/tenant"
	"github.com/arriendo/arriendo/internal/domain/user"
	"github.com/arriendo/arriendo/internal/port/database"
	"github.com/arriendo/arriendo/internal/service"
)

func testAuthService() *service.AuthService {
	return service.NewAuthService(&config.Auth{
		JWTSecret:         "test-secret-do-not-use",
		AccessTokenExpiry: time.Hour,
		BcryptCost:        bcrypt.MinCost,
	})
}

type fakeRegistry struct {
	bySlug map[string]*tenant.Tenant
	err    error
}

func (f *fakeRegistry) LookupBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("tenant %q: %w", slug, domain.ErrNotFound)
	}
	return t, nil
}

func (f *fakeRegistry) GetByID(context.Context, string) (*tenant.Tenant, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeRegistry) LookupByAdminEmail(context.Context, string) (*tenant.Tenant, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeRegistry) List(context.Context) ([]tenant.Tenant, error)       { return nil, nil }
func (f *fakeRegistry) ListActive(context.Context) ([]tenant.Tenant, error) { return nil, nil }

func (f *fakeRegistry) SetActive(context.Context, string, bool) (*tenant.Tenant, error) {
	return nil, domain.ErrNotFound
}

// fakeSession records schema binding, principal checks, and release order.
type fakeSession struct {
	schema     string
	knownIDs   map[string]bool
	verified   []string
	released   bool
	releasedAt time.Time
}

func (f *fakeSession) Schema() string { return f.schema }

func (f *fakeSession) VerifyPrincipal(_ context.Context, id string) error {
	f.verified = append(f.verified, id)
	if !f.knownIDs[id] {
		return domain.ErrPrincipalUnknown
	}
	return nil
}

func (f *fakeSession) GetUserByEmail(context.Context, string) (*user.User, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeSession) GetUser(context.Context, string) (*user.User, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeSession) CreateUser(context.Context, *user.User) error        { return nil }
func (f *fakeSession) ListUsers(context.Context) ([]user.User, error)      { return nil, nil }
func (f *fakeSession) UpdateUserPassword(context.Context, string, string) error { return nil }

func (f *fakeSession) ListPropertyTypes(context.Context) ([]property.Type, error) {
	return nil, nil
}

func (f *fakeSession) ListPropertySubtypes(context.Context) ([]property.Subtype, error) {
	return nil, nil
}

func (f *fakeSession) ListProperties(context.Context) ([]property.Summary, error) {
	return nil, nil
}

func (f *fakeSession) Release() {
	f.released = true
	f.releasedAt = time.Now()
}

type fakeBinder struct {
	sess    *fakeSession
	bindErr error
	bound   []*tenant.Context
}

func (f *fakeBinder) Bind(_ context.Context, tc *tenant.Context) (database.Session, error) {
	if f.bindErr != nil {
		return nil, f.bindErr
	}
	f.bound = append(f.bound, tc)
	if tc != nil {
		f.sess.schema = tc.SchemaName
	}
	return f.sess, nil
}

var (
	_ database.Registry      = (*fakeRegistry)(nil)
	_ database.Session       = (*fakeSession)(nil)
	_ database.SessionBinder = (*fakeBinder)(nil)
)
