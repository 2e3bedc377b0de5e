//go:build integration

package integration_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/arriendo/arriendo/internal/adapter/postgres"
	"github.com/arriendo/arriendo/internal/domain"
	"github.com/arriendo/arriendo/internal/domain/tenant"
)

func TestProvisionCreatesWorkingTenant(t *testing.T) {
	ctx := context.Background()
	res := mustProvision(t, "Completo", "admin@completo.bo")

	// Registry row resolves.
	got, err := testReg.LookupBySlug(ctx, res.Tenant.Slug)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.SchemaName != res.Tenant.SchemaName {
		t.Errorf("schema = %q, want %q", got.SchemaName, res.Tenant.SchemaName)
	}

	// Seeds are in place.
	sess, err := testBinder.Bind(ctx, &tenant.Context{
		Slug: res.Tenant.Slug, SchemaName: res.Tenant.SchemaName, IsActive: true,
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	defer sess.Release()

	types, err := sess.ListPropertyTypes(ctx)
	if err != nil {
		t.Fatalf("list property types: %v", err)
	}
	if len(types) == 0 {
		t.Error("no property types seeded")
	}
	subtypes, err := sess.ListPropertySubtypes(ctx)
	if err != nil {
		t.Fatalf("list property subtypes: %v", err)
	}
	if len(subtypes) == 0 {
		t.Error("no property subtypes seeded")
	}

	// Admin principal exists and can be fetched.
	admin, err := sess.GetUserByEmail(ctx, "admin@completo.bo")
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	if admin.ID != res.Admin.ID {
		t.Errorf("admin id = %s, want %s", admin.ID, res.Admin.ID)
	}
}

func TestDuplicateSlugConflicts(t *testing.T) {
	mustProvision(t, "Duplicado", "admin@duplicado.bo")

	_, err := testTenants.Provision(context.Background(), tenant.CreateRequest{
		CompanyName:   "Duplicado",
		AdminName:     "Otro Admin",
		AdminEmail:    "otro@duplicado.bo",
		AdminPassword: "secreto1",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second provision = %v, want ErrConflict", err)
	}
}

// TestCatalogReplayIsIdempotent re-issues the full object catalog against an
// already built schema; every statement must tolerate the rerun.
func TestCatalogReplayIsIdempotent(t *testing.T) {
	ctx := context.Background()
	res := mustProvision(t, "Replay", "admin@replay.bo")

	for _, obj := range postgres.Catalog() {
		if _, err := testPool.Exec(ctx, obj.Render(res.Tenant.SchemaName, testCfg.Postgres.RuntimeRole)); err != nil {
			t.Fatalf("replay %s %s: %v", obj.Kind, obj.Name, err)
		}
	}
}

// TestConcurrentProvisionSameSlug races two provisioners for one slug. The
// registry's unique constraint decides the winner inside the transaction;
// the loser must come back with Conflict and leave no debris.
func TestConcurrentProvisionSameSlug(t *testing.T) {
	ctx := context.Background()

	req := tenant.CreateRequest{
		CompanyName:   "Carrera",
		AdminName:     "Admin Carrera",
		AdminEmail:    "admin@carrera.bo",
		AdminPassword: "secreto1",
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = testTenants.Provision(ctx, req)
		}(i)
	}
	wg.Wait()

	var won, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrConflict):
			conflicted++
		default:
			t.Errorf("unexpected provisioning error: %v", err)
		}
	}
	if won != 1 || conflicted != 1 {
		t.Errorf("winners = %d, conflicts = %d; want exactly one of each", won, conflicted)
	}

	winner, err := testReg.LookupBySlug(ctx, "carrera")
	if err != nil {
		t.Fatalf("winner lookup: %v", err)
	}
	t.Cleanup(func() { _ = testTenants.Remove(context.Background(), winner.ID) })

	var count int
	if err := testPool.QueryRow(ctx,
		`SELECT count(*) FROM public.tenant WHERE slug = $1`, "carrera").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("registry rows for carrera = %d, want 1", count)
	}
}

func TestDropRemovesSchemaAndRegistry(t *testing.T) {
	ctx := context.Background()

	res, err := testTenants.Provision(ctx, tenant.CreateRequest{
		CompanyName:   "Efimero",
		AdminName:     "Admin Efimero",
		AdminEmail:    "admin@efimero.bo",
		AdminPassword: "secreto1",
	})
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	if err := testTenants.Remove(ctx, res.Tenant.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := testReg.LookupBySlug(ctx, res.Tenant.Slug); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("lookup after drop = %v, want ErrNotFound", err)
	}

	var exists bool
	if err := testPool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_namespace WHERE nspname = $1)`,
		res.Tenant.SchemaName).Scan(&exists); err != nil {
		t.Fatalf("pg_namespace: %v", err)
	}
	if exists {
		t.Errorf("schema %s still exists after drop", res.Tenant.SchemaName)
	}

	// The slug is free for a fresh start.
	res2, err := testTenants.Provision(ctx, tenant.CreateRequest{
		CompanyName:   "Efimero",
		AdminName:     "Admin Efimero",
		AdminEmail:    "admin@efimero.bo",
		AdminPassword: "secreto1",
	})
	if err != nil {
		t.Fatalf("re-provision: %v", err)
	}
	t.Cleanup(func() { _ = testTenants.Remove(context.Background(), res2.Tenant.ID) })
}
