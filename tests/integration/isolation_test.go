//go:build integration

package integration_test

import (
	"context"
	"testing"

	"github.com/arriendo/arriendo/internal/adapter/otel"
	"github.com/arriendo/arriendo/internal/adapter/postgres"
	"github.com/arriendo/arriendo/internal/domain/tenant"
)

func TestBoundSessionCurrentSchema(t *testing.T) {
	ctx := context.Background()
	res := mustProvision(t, "Esquema Uno", "admin@esquema-uno.bo")

	sess, err := testBinder.Bind(ctx, &tenant.Context{
		Slug: res.Tenant.Slug, SchemaName: res.Tenant.SchemaName, IsActive: true,
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	defer sess.Release()

	pgSess := sess.(*postgres.Session)
	got, err := pgSess.CurrentSchema(ctx)
	if err != nil {
		t.Fatalf("current_schema: %v", err)
	}
	if got != res.Tenant.SchemaName {
		t.Errorf("current_schema = %q, want %q", got, res.Tenant.SchemaName)
	}
}

func TestAnonymousSessionBoundToPublic(t *testing.T) {
	ctx := context.Background()

	sess, err := testBinder.Bind(ctx, nil)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	defer sess.Release()

	got, err := sess.(*postgres.Session).CurrentSchema(ctx)
	if err != nil {
		t.Fatalf("current_schema: %v", err)
	}
	if got != "public" {
		t.Errorf("current_schema = %q, want public", got)
	}
}

// TestSingleConnectionReuseAcrossTenants forces every request through one
// physical connection and checks that consecutive bindings to different
// tenants never see each other's rows.
func TestSingleConnectionReuseAcrossTenants(t *testing.T) {
	ctx := context.Background()
	a := mustProvision(t, "Aislado A", "admin@aislado-a.bo")
	b := mustProvision(t, "Aislado B", "admin@aislado-b.bo")

	metrics, err := otel.NewMetrics()
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	cfg := testCfg.Postgres
	cfg.MaxConns = 1
	cfg.MinConns = 1
	pool, err := postgres.NewPool(ctx, cfg, metrics)
	if err != nil {
		t.Fatalf("single-conn pool: %v", err)
	}
	defer pool.Close()
	binder := postgres.NewSessionBinder(pool, metrics)

	for i := 0; i < 3; i++ {
		for _, tc := range []struct {
			res   *tenant.Tenant
			admin string
		}{
			{a.Tenant, "admin@aislado-a.bo"},
			{b.Tenant, "admin@aislado-b.bo"},
		} {
			sess, err := binder.Bind(ctx, &tenant.Context{
				Slug: tc.res.Slug, SchemaName: tc.res.SchemaName, IsActive: true,
			})
			if err != nil {
				t.Fatalf("bind %s: %v", tc.res.Slug, err)
			}

			users, err := sess.ListUsers(ctx)
			if err != nil {
				sess.Release()
				t.Fatalf("list users in %s: %v", tc.res.Slug, err)
			}
			if len(users) != 1 || users[0].Email != tc.admin {
				sess.Release()
				t.Fatalf("in %s saw %d users (first %v), want only %s",
					tc.res.Slug, len(users), users, tc.admin)
			}
			sess.Release()
		}
	}
}

// TestLeakedBindingIsNeutralized simulates a request that died without the
// binder's cleanup: the connection goes back to the pool still pointing at a
// tenant schema. The next acquisition must start from the public baseline.
func TestLeakedBindingIsNeutralized(t *testing.T) {
	ctx := context.Background()
	res := mustProvision(t, "Fuga", "admin@fuga.bo")

	metrics, err := otel.NewMetrics()
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	cfg := testCfg.Postgres
	cfg.MaxConns = 1
	cfg.MinConns = 1
	pool, err := postgres.NewPool(ctx, cfg, metrics)
	if err != nil {
		t.Fatalf("single-conn pool: %v", err)
	}
	defer pool.Close()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := conn.Exec(ctx, "SET search_path TO "+res.Tenant.SchemaName+", public"); err != nil {
		conn.Release()
		t.Fatalf("set search_path: %v", err)
	}
	// Dirty release: no reset.
	conn.Release()

	conn, err = pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("re-acquire: %v", err)
	}
	defer conn.Release()

	var schema string
	if err := conn.QueryRow(ctx, `SELECT current_schema()`).Scan(&schema); err != nil {
		t.Fatalf("current_schema: %v", err)
	}
	if schema != "public" {
		t.Errorf("current_schema after dirty release = %q, want public", schema)
	}
}

func TestPrincipalCrossCheckAgainstRealSchema(t *testing.T) {
	ctx := context.Background()
	a := mustProvision(t, "Cruce A", "admin@cruce-a.bo")
	b := mustProvision(t, "Cruce B", "admin@cruce-b.bo")

	// Bind B's schema and check A's admin id: cryptographically this
	// principal is fine, structurally it does not exist over there.
	sess, err := testBinder.Bind(ctx, &tenant.Context{
		Slug: b.Tenant.Slug, SchemaName: b.Tenant.SchemaName, IsActive: true,
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	defer sess.Release()

	if err := sess.VerifyPrincipal(ctx, a.Admin.ID); err == nil {
		t.Error("A's principal verified inside B's schema")
	}
	if err := sess.VerifyPrincipal(ctx, b.Admin.ID); err != nil {
		t.Errorf("B's own principal rejected: %v", err)
	}
}
