package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "arriendo"

// Metrics holds the isolation core's metric instruments.
type Metrics struct {
	TenantsProvisioned  metric.Int64Counter
	TenantsDropped      metric.Int64Counter
	SessionsBound       metric.Int64Counter
	ResetFailures       metric.Int64Counter
	PrincipalRejections metric.Int64Counter
	ProvisionDuration   metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.TenantsProvisioned, err = meter.Int64Counter("arriendo.tenants.provisioned",
		metric.WithDescription("Number of tenants provisioned"))
	if err != nil {
		return nil, err
	}

	m.TenantsDropped, err = meter.Int64Counter("arriendo.tenants.dropped",
		metric.WithDescription("Number of tenants dropped"))
	if err != nil {
		return nil, err
	}

	m.SessionsBound, err = meter.Int64Counter("arriendo.sessions.bound",
		metric.WithDescription("Number of tenant sessions bound"))
	if err != nil {
		return nil, err
	}

	m.ResetFailures, err = meter.Int64Counter("arriendo.sessions.reset_failures",
		metric.WithDescription("Connections evicted because the acquire-time reset failed"))
	if err != nil {
		return nil, err
	}

	m.PrincipalRejections, err = meter.Int64Counter("arriendo.auth.principal_rejections",
		metric.WithDescription("Valid credentials rejected because the principal is unknown in the tenant"))
	if err != nil {
		return nil, err
	}

	m.ProvisionDuration, err = meter.Float64Histogram("arriendo.provision.duration_seconds",
		metric.WithDescription("Tenant provisioning duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
