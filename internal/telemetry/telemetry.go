// Package telemetry provides OpenTelemetry tracing, exported to Honeycomb over
// OTLP HTTP.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "riverlight"
	serviceVersion = "0.1.0"
)

// Setup initializes OpenTelemetry with an OTLP HTTP exporter configured from
// the standard OTEL_EXPORTER_OTLP_* environment variables.
//
// Returns a shutdown function that should be called on application exit.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}
	return SetupWithExporter(ctx, exporter, sdktrace.WithBatcher(exporter))
}

// SetupWithExporter registers a global tracer provider around exporter.
// register decides how spans reach it; nil means synchronous export.
func SetupWithExporter(ctx context.Context, exporter sdktrace.SpanExporter, register sdktrace.TracerProviderOption) (func(context.Context) error, error) {
	res, err := newResource(ctx)
	if err != nil {
		return nil, err
	}
	if register == nil {
		register = sdktrace.WithSyncer(exporter)
	}

	tp := sdktrace.NewTracerProvider(
		register,
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// newResource describes this process. It is built without merging
// resource.Default() to avoid schema URL conflicts.
func newResource(ctx context.Context) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("host.name", getHostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.name", "go"),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
}

// Tracer returns a named tracer for the given component. Before Setup runs,
// or when it is skipped, the global provider is a no-op.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// getHostname returns the system hostname, or "unknown" if it cannot be determined.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
