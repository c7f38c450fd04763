// Package telemetry wires OpenTelemetry tracing for layout and session
// operations. Tracing is opt-in: without OTEL_EXPORTER_OTLP_ENDPOINT set,
// Setup returns a disabled Telemetry whose tracer produces no-op spans.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Telemetry holds the tracer provider for the process.
type Telemetry struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
	enabled  bool
}

// Setup creates a Telemetry exporting via OTLP/HTTP if
// OTEL_EXPORTER_OTLP_ENDPOINT is set, otherwise a disabled one.
func Setup(ctx context.Context) (*Telemetry, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return &Telemetry{tracer: noop.NewTracerProvider().Tracer("conndeck")}, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // For local dev; make configurable
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "conndeck"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	return &Telemetry{
		provider: provider,
		tracer:   provider.Tracer("conndeck/ui"),
		enabled:  true,
	}, nil
}

// Enabled reports whether spans are actually exported.
func (t *Telemetry) Enabled() bool {
	return t != nil && t.enabled
}

// StartSpan starts a span for a layout or session operation. Attributes
// are namespaced under conndeck.*.
func (t *Telemetry) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	if t == nil {
		return ctx, noop.Span{}
	}
	return t.tracer.Start(ctx, name, oteltrace.WithAttributes(attrs...))
}

// TabAttr tags a span with the tab it operates on.
func TabAttr(tabID string) attribute.KeyValue {
	return attribute.String("conndeck.tab.id", tabID)
}

// PanelAttr tags a span with the panel it operates on.
func PanelAttr(panelID string) attribute.KeyValue {
	return attribute.String("conndeck.panel.id", panelID)
}

// SessionAttr tags a span with the session it operates on.
func SessionAttr(sessionID string) attribute.KeyValue {
	return attribute.String("conndeck.session.id", sessionID)
}

// Shutdown flushes and closes the provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
