package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	telemetry "github.com/arriendo/arriendo/internal/adapter/otel"
	"github.com/arriendo/arriendo/internal/domain"
	"github.com/arriendo/arriendo/internal/domain/tenant"
	"github.com/arriendo/arriendo/internal/port/database"
)

// SessionBinder checks out pooled connections bound to one tenant schema for
// the lifetime of a request. The reset half of the protocol lives in the
// pool's BeforeAcquire hook (see NewPool) and runs on every acquisition; the
// binder only performs the rebind step, and only when a tenant was resolved.
type SessionBinder struct {
	pool    *pgxpool.Pool
	metrics *telemetry.Metrics
}

// NewSessionBinder creates a SessionBinder over the given pool.
func NewSessionBinder(pool *pgxpool.Pool, metrics *telemetry.Metrics) *SessionBinder {
	return &SessionBinder{pool: pool, metrics: metrics}
}

// Bind acquires a connection and, when tc is non-nil, binds its search_path
// to the resolved tenant schema. No business query runs on the connection
// before this returns. The caller must Release the session; failing to do so
// is a leak but never a cross-tenant hazard, because the next acquisition
// resets the binding regardless.
func (b *SessionBinder) Bind(ctx context.Context, tc *tenant.Context) (database.Session, error) {
	schema := baselineSchema
	if tc != nil {
		schema = tc.SchemaName
	}
	ctx, span := telemetry.StartBindSpan(ctx, schema)
	defer span.End()

	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if tc != nil {
		// The baseline stays on the path so extensions and shared objects
		// resolve; unqualified tenant tables resolve in the tenant schema
		// because it comes first.
		setPath := fmt.Sprintf("SET search_path TO %s, %s",
			pgx.Identifier{schema}.Sanitize(), baselineSchema)
		if _, err := conn.Exec(ctx, setPath); err != nil {
			conn.Release()
			return nil, fmt.Errorf("bind schema %s: %w", schema, err)
		}
	}

	b.metrics.SessionsBound.Add(ctx, 1)
	return &Session{conn: conn, schema: schema, metrics: b.metrics}, nil
}

// Session is a single pooled connection bound to one schema. It implements
// database.Session; all its queries use unqualified table names and rely on
// the binding established in Bind.
type Session struct {
	conn    *pgxpool.Conn
	schema  string
	metrics *telemetry.Metrics
}

// Schema returns the schema this session is bound to.
func (s *Session) Schema() string { return s.schema }

// Release returns the connection to the pool. Safe to call exactly once;
// deferred by the session middleware on every path, aborted or not.
func (s *Session) Release() {
	s.conn.Release()
}

// CurrentSchema asks PostgreSQL which schema unqualified names currently
// resolve to. Used by tests to assert the binding invariant.
func (s *Session) CurrentSchema(ctx context.Context) (string, error) {
	var schema string
	if err := s.conn.QueryRow(ctx, `SELECT current_schema()`).Scan(&schema); err != nil {
		return "", fmt.Errorf("current_schema: %w", err)
	}
	return schema, nil
}

// VerifyPrincipal re-checks that the credential's principal exists as a row
// inside the bound schema. A token signed with the service-wide secret but
// minted for another tenant, or one outliving the principal's removal, fails
// here with domain.ErrPrincipalUnknown.
func (s *Session) VerifyPrincipal(ctx context.Context, principalID string) error {
	if _, err := uuid.Parse(principalID); err != nil {
		// A malformed subject can never match a principal row.
		s.metrics.PrincipalRejections.Add(ctx, 1)
		return domain.ErrPrincipalUnknown
	}
	var exists bool
	err := s.conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, principalID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("verify principal: %w", err)
	}
	if !exists {
		s.metrics.PrincipalRejections.Add(ctx, 1)
		return domain.ErrPrincipalUnknown
	}
	return nil
}
