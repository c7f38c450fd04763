package telemetry

import (
	"context"
	"testing"
)

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	tel, err := Setup(context.Background())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if tel.Enabled() {
		t.Error("Enabled() = true, want false without endpoint")
	}

	// Disabled telemetry must still hand out usable spans.
	ctx, span := tel.StartSpan(context.Background(), "layout.split", TabAttr("t1"))
	if ctx == nil {
		t.Fatal("StartSpan returned nil context")
	}
	span.End()

	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestNilTelemetrySafe(t *testing.T) {
	var tel *Telemetry
	if tel.Enabled() {
		t.Error("nil Telemetry should report disabled")
	}
	_, span := tel.StartSpan(context.Background(), "noop")
	span.End()
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown on nil: %v", err)
	}
}
