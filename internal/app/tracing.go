package app

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// SetupTracing installs the W3C trace-context and baggage propagators so an
// inbound traceparent header becomes the parent of request spans and reaches
// the logger. Without it the global propagator is a no-op.
func SetupTracing() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}
