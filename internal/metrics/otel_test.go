package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if handler != nil {
		t.Fatalf("expected nil handler when disabled")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}
}

func TestSetupEnabledExportsGatewayMetrics(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:     true,
		ServiceName: "matchday-service",
		// No OTLP endpoint; uses Prometheus exporter only.
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec == nil || handler == nil || shutdown == nil {
		t.Fatalf("expected recorder, handler and shutdown when enabled")
	}
	defer func() { _ = shutdown(context.Background()) }()

	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordRefreshCycle(time.Millisecond)
	rec.RecordGatewayCall("upcoming_matches", time.Millisecond, errors.New("boom"))
	rec.RecordRateLimit("upcoming_matches", time.Second)
	rec.RecordFlush(time.Millisecond, nil)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rr.Body.String()
	for _, name := range []string{"gateway_calls_total", "gateway_errors_total", "favorites_flushes_total", "http_requests_total"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in prometheus output", name)
		}
	}
	if rec.GatewayErrors("upcoming_matches") != 1 {
		t.Fatalf("expected in-memory stats alongside otel export")
	}
}

func TestSetupPropagatesReaderFactoryError(t *testing.T) {
	orig := promReaderFactory
	promReaderFactory = func() (sdkmetric.Reader, http.Handler, error) {
		return nil, nil, errors.New("no registry")
	}
	defer func() { promReaderFactory = orig }()

	if _, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true}); err == nil {
		t.Fatal("expected reader factory error")
	}
}

func TestSetupPropagatesInstrumentError(t *testing.T) {
	orig := instrumentFactory
	instrumentFactory = func(metric.MeterProvider) (*otelInstruments, error) {
		return nil, errors.New("instrument failure")
	}
	defer func() { instrumentFactory = orig }()

	if _, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true}); err == nil {
		t.Fatal("expected instrument factory error")
	}
}
