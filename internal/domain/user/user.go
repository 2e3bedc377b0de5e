// Package user defines the principal domain model. A principal exists inside
// exactly one tenant schema; the same email may appear in different tenants
// as unrelated identities.
package user

import (
	"errors"
	"strings"
	"time"
)

// Roles a principal can hold inside its tenant.
const (
	RoleAdmin    = "ADMIN"
	RoleResident = "INQUILINO"
)

// User is a principal row in the bound tenant schema.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest holds the fields required to register a principal.
type CreateRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Validate checks required fields and role membership.
func (r *CreateRequest) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return errors.New("valid email is required")
	}
	if len(r.Name) < 2 {
		return errors.New("name is required (min 2 characters)")
	}
	if len(r.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if r.Role != "" && r.Role != RoleAdmin && r.Role != RoleResident {
		return errors.New("role must be ADMIN or INQUILINO")
	}
	return nil
}

// LoginRequest is the credentials payload for tenant-scoped login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both credential fields are present.
func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}
