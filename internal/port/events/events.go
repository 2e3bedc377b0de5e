// Package events defines the port for publishing tenant lifecycle events to
// downstream consumers (billing, onboarding mail, analytics). Publishing is
// best-effort: the provisioning transaction never waits on the broker.
package events

import (
	"context"
	"time"
)

// Subjects for tenant lifecycle events.
const (
	SubjectTenantProvisioned = "tenants.provisioned"
	SubjectTenantDropped     = "tenants.dropped"
	SubjectTenantDeactivated = "tenants.deactivated"
)

// TenantEvent is the payload published on every lifecycle subject.
type TenantEvent struct {
	Slug        string    `json:"slug"`
	SchemaName  string    `json:"schema_name"`
	CompanyName string    `json:"company_name,omitempty"`
	At          time.Time `json:"at"`
}

// Publisher sends lifecycle events to the broker.
type Publisher interface {
	Publish(ctx context.Context, subject string, event TenantEvent) error
}

// Noop discards all events; used when no broker is configured.
type Noop struct{}

// Publish implements Publisher.
func (Noop) Publish(context.Context, string, TenantEvent) error { return nil }
