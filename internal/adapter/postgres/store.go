package postgres

import (
	"context"
	"fmt"

	"github.com/arriendo/arriendo/internal/domain"
	"github.com/arriendo/arriendo/internal/domain/property"
	"github.com/arriendo/arriendo/internal/domain/user"
)

// Tenant-scoped queries. Every statement here uses unqualified table names
// and runs on the session's bound connection; the schema they resolve in was
// fixed by SessionBinder.Bind before any of these can be reached.

const userColumns = `id, email, password, name, COALESCE(phone, ''), role, is_active, created_at, updated_at`

func scanUser(row scannable) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail returns the principal with the given email in the bound
// tenant, or domain.ErrNotFound.
func (s *Session) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	row := s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundWrap(err, "get user by email")
	}
	return u, nil
}

// GetUser returns the principal by id in the bound tenant.
func (s *Session) GetUser(ctx context.Context, id string) (*user.User, error) {
	row := s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundWrap(err, "get user %s", id)
	}
	return u, nil
}

// CreateUser inserts a principal into the bound tenant. Duplicate email
// inside the tenant yields domain.ErrConflict.
func (s *Session) CreateUser(ctx context.Context, u *user.User) error {
	row := s.conn.QueryRow(ctx,
		`INSERT INTO users (id, email, password, name, phone, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		u.ID, u.Email, u.PasswordHash, u.Name, nullIfEmpty(u.Phone), u.Role, u.IsActive)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return conflictWrap(err, "create user %s", u.Email)
	}
	return nil
}

// ListUsers returns all principals in the bound tenant, newest first.
func (s *Session) ListUsers(ctx context.Context) ([]user.User, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUserPassword replaces a principal's password hash.
func (s *Session) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	tag, err := s.conn.Exec(ctx,
		`UPDATE users SET password = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update password for %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListPropertyTypes returns the seeded property classifications.
func (s *Session) ListPropertyTypes(ctx context.Context) ([]property.Type, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT id, name, code, is_active FROM property_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list property types: %w", err)
	}
	defer rows.Close()

	var types []property.Type
	for rows.Next() {
		var t property.Type
		if err := rows.Scan(&t.ID, &t.Name, &t.Code, &t.IsActive); err != nil {
			return nil, fmt.Errorf("scan property type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// ListPropertySubtypes returns the seeded property sub-classifications.
func (s *Session) ListPropertySubtypes(ctx context.Context) ([]property.Subtype, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT id, property_type_id, name, code, is_active FROM property_subtypes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list property subtypes: %w", err)
	}
	defer rows.Close()

	var subtypes []property.Subtype
	for rows.Next() {
		var st property.Subtype
		if err := rows.Scan(&st.ID, &st.TypeID, &st.Name, &st.Code, &st.IsActive); err != nil {
			return nil, fmt.Errorf("scan property subtype: %w", err)
		}
		subtypes = append(subtypes, st)
	}
	return subtypes, rows.Err()
}

// ListProperties returns the bound tenant's catalog, newest first.
func (s *Session) ListProperties(ctx context.Context) ([]property.Summary, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT p.id, p.title, COALESCE(p.description, ''), p.status, pt.code, pst.code, p.created_at
		 FROM properties p
		 JOIN property_types pt ON pt.id = p.property_type_id
		 JOIN property_subtypes pst ON pst.id = p.property_subtype_id
		 ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var props []property.Summary
	for rows.Next() {
		var p property.Summary
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.TypeCode, &p.SubtypeCode, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		props = append(props, p)
	}
	return props, rows.Err()
}
