// Package ristretto caches tenant registry lookups in-process. Every tenant
// request starts with a slug lookup; this keeps the hot ones off the
// database without changing resolver semantics.
package ristretto

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/arriendo/arriendo/internal/domain/tenant"
	"github.com/arriendo/arriendo/internal/port/database"
)

// CachedRegistry decorates a database.Registry with a short-TTL slug cache.
// Only LookupBySlug is cached: it is the per-request hot path, and its keys
// are the ones the resolver hammers. Mutations that pass through here
// invalidate their slug; mutations that bypass the registry (tenant drop)
// must call Forget.
type CachedRegistry struct {
	inner database.Registry
	cache *ristretto.Cache[string, *tenant.Tenant]
	ttl   time.Duration
}

// NewCachedRegistry wraps inner with an in-process cache of maxTenants slug
// entries living at most ttl.
func NewCachedRegistry(inner database.Registry, maxTenants int64, ttl time.Duration) (*CachedRegistry, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *tenant.Tenant]{
		NumCounters: maxTenants * 10,
		MaxCost:     maxTenants,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CachedRegistry{inner: inner, cache: cache, ttl: ttl}, nil
}

// LookupBySlug returns the cached tenant or falls through to the registry.
// Misses are cached on success only; a not-found must stay a live lookup so
// a freshly provisioned tenant resolves immediately.
func (r *CachedRegistry) LookupBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	if t, ok := r.cache.Get(slug); ok {
		cp := *t
		return &cp, nil
	}

	t, err := r.inner.LookupBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	cp := *t
	r.cache.SetWithTTL(slug, &cp, 1, r.ttl)
	return t, nil
}

// Forget drops a slug from the cache. Called after tenant removal so a
// dropped tenant stops resolving without waiting out the TTL.
func (r *CachedRegistry) Forget(slug string) {
	r.cache.Del(slug)
}

// SetActive updates the flag and invalidates the cached entry.
func (r *CachedRegistry) SetActive(ctx context.Context, id string, active bool) (*tenant.Tenant, error) {
	t, err := r.inner.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	r.cache.Del(t.Slug)
	return t, nil
}

// GetByID passes through; ID lookups are operator traffic, not hot path.
func (r *CachedRegistry) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	return r.inner.GetByID(ctx, id)
}

// LookupByAdminEmail passes through; it runs only during provisioning.
func (r *CachedRegistry) LookupByAdminEmail(ctx context.Context, email string) (*tenant.Tenant, error) {
	return r.inner.LookupByAdminEmail(ctx, email)
}

// List passes through.
func (r *CachedRegistry) List(ctx context.Context) ([]tenant.Tenant, error) {
	return r.inner.List(ctx)
}

// ListActive passes through.
func (r *CachedRegistry) ListActive(ctx context.Context) ([]tenant.Tenant, error) {
	return r.inner.ListActive(ctx)
}

// Close releases the cache's resources.
func (r *CachedRegistry) Close() {
	r.cache.Close()
}

var _ database.Registry = (*CachedRegistry)(nil)
