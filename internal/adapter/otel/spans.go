package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "arriendo"

// StartProvisionSpan starts a span covering one tenant provisioning.
func StartProvisionSpan(ctx context.Context, slug, schema string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "tenant.provision",
		trace.WithAttributes(
			attribute.String("tenant.slug", slug),
			attribute.String("tenant.schema", schema),
		),
	)
}

// StartBindSpan starts a span covering one session bind.
func StartBindSpan(ctx context.Context, schema string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "session.bind",
		trace.WithAttributes(
			attribute.String("tenant.schema", schema),
		),
	)
}
