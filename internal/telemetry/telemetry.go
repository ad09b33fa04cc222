// Package telemetry wires optional OpenTelemetry trace export.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// EnvEndpoint enables export when set.
const EnvEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"

// ShutdownFunc flushes and stops the exporter.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs a global tracer provider exporting over OTLP/HTTP when
// OTEL_EXPORTER_OTLP_ENDPOINT is set. Otherwise the global no-op provider is
// left in place and the returned shutdown does nothing.
func Setup(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	if os.Getenv(EnvEndpoint) == "" {
		return noopShutdown, nil
	}

	// The exporter reads the endpoint URL and appends /v1/traces itself.
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return noopShutdown, fmt.Errorf("telemetry: create otlp exporter: %w", err)
	}

	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		serviceName = name
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
