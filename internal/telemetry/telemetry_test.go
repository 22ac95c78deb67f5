package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
)

func TestInitProviderDisabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := InitProvider(context.Background(), Config{ServiceName: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if otel.GetTracerProvider() != before {
		t.Fatalf("disabled telemetry must not replace the global tracer provider")
	}

	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown returned error: %v", err)
	}
}

func TestInitProviderRejectsSampleRatio(t *testing.T) {
	_, err := InitProvider(context.Background(), Config{
		Enabled:      true,
		ServiceName:  "test",
		OTLPEndpoint: "http://localhost:4318",
		SampleRatio:  2,
	})
	if err == nil {
		t.Fatalf("expected error for out of range sample ratio")
	}
}

func TestInitProviderEnabled(t *testing.T) {
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	shutdown, err := InitProvider(context.Background(), Config{
		Enabled:      true,
		ServiceName:  "test",
		OTLPEndpoint: "http://127.0.0.1:4318/",
		SampleRatio:  1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if otel.GetTracerProvider() == original {
		t.Fatalf("expected the global tracer provider to be replaced")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown returned error: %v", err)
	}
}
