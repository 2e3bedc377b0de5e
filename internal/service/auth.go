// Package service implements the application services over the database
// ports: authentication of tenant principals and tenant lifecycle.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/arriendo/arriendo/internal/config"
	"github.com/arriendo/arriendo/internal/domain"
	"github.com/arriendo/arriendo/internal/domain/user"
	"github.com/arriendo/arriendo/internal/port/database"
)

// Claims is the payload of an arriendo access token. TenantSlug pins the
// credential to the tenant it was issued for; the resolver treats it as the
// authoritative tenant claim.
type Claims struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	TenantSlug string `json:"tenant_slug"`
	jwt.RegisteredClaims
}

// AuthService authenticates principals inside a bound tenant session and
// issues/validates the signed bearer credentials that carry the tenant claim.
type AuthService struct {
	cfg    *config.Auth
	secret []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(cfg *config.Auth) *AuthService {
	return &AuthService{cfg: cfg, secret: []byte(cfg.JWTSecret)}
}

// SignToken issues an access token for a principal of the given tenant.
func (s *AuthService) SignToken(u *user.User, tenantSlug string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:      u.Email,
		Role:       u.Role,
		TenantSlug: tenantSlug,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseClaims validates a raw bearer credential. Malformed, expired, or
// wrongly signed tokens yield (nil, false) — never an error — so public
// endpoints can fall back to URL-derived tenant identification. A token that
// parses but carries no subject or tenant claim is equally worthless.
func (s *AuthService) ParseClaims(raw string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	if claims.Subject == "" || claims.TenantSlug == "" {
		return nil, false
	}
	return claims, true
}

// Login authenticates a principal by email and password inside the bound
// tenant session and returns an access token pinned to that tenant. All
// failure modes collapse into ErrUnauthorized so callers cannot probe which
// emails exist.
func (s *AuthService) Login(ctx context.Context, sess database.Session, tenantSlug string, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	u, err := sess.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	if !u.IsActive {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}

	token, err := s.SignToken(u, tenantSlug)
	if err != nil {
		return nil, err
	}

	return &user.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(s.cfg.AccessTokenExpiry.Seconds()),
		User:        *u,
	}, nil
}

// Register creates a principal in the bound tenant. Public registration
// always yields a resident; admins are created at provisioning time or by
// another admin through the user management surface.
func (s *AuthService) Register(ctx context.Context, sess database.Session, req user.CreateRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	role := req.Role
	if role == "" {
		role = user.RoleResident
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	if err := sess.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, sess database.Session, principalID, current, next string) error {
	if len(next) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	u, err := sess.GetUser(ctx, principalID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return fmt.Errorf("current password incorrect: %w", domain.ErrUnauthorized)
	}

	hash, err := s.HashPassword(next)
	if err != nil {
		return err
	}
	return sess.UpdateUserPassword(ctx, principalID, hash)
}

// HashPassword bcrypt-hashes a password at the configured cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
