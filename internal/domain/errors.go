// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates the entity already exists (slug or schema taken).
var ErrConflict = errors.New("conflict: already exists")

// ErrUnauthorized indicates the request's credential does not grant access.
var ErrUnauthorized = errors.New("unauthorized")

// ErrTenantMismatch indicates the credential was issued for a different
// tenant than the one addressed by the URL. Wraps ErrUnauthorized so generic
// checks still match, but stays distinguishable from ErrPrincipalUnknown and
// from ErrNotFound.
var ErrTenantMismatch = &sentinelError{msg: "credential does not belong to the requested tenant", base: ErrUnauthorized}

// ErrPrincipalUnknown indicates a cryptographically valid credential whose
// principal does not exist inside the bound tenant schema.
var ErrPrincipalUnknown = &sentinelError{msg: "principal not recognized in this tenant", base: ErrUnauthorized}

// ErrProvisioning indicates tenant schema creation failed after the registry
// row was tentatively inserted; the insertion is rolled back before this
// error reaches the caller.
var ErrProvisioning = errors.New("tenant provisioning failed")

type sentinelError struct {
	msg  string
	base error
}

func (e *sentinelError) Error() string { return e.msg }
func (e *sentinelError) Unwrap() error { return e.base }
