package testutil

import (
	"testing"

	"github.com/preston-bernstein/matchday-service/internal/metrics"
)

// AssertGatewayCalls fails unless rec saw exactly calls attempts and errs
// failures for the gateway operation.
func AssertGatewayCalls(t *testing.T, rec *metrics.Recorder, operation string, calls, errs int) {
	t.Helper()
	gotCalls, gotErrs := rec.GatewayCalls(operation), rec.GatewayErrors(operation)
	if gotCalls != calls || gotErrs != errs {
		t.Fatalf("%s: expected %d calls / %d errors, got %d / %d", operation, calls, errs, gotCalls, gotErrs)
	}
}

// AssertFlushes fails unless rec counted total favorites flushes, failed of
// them unsuccessful.
func AssertFlushes(t *testing.T, rec *metrics.Recorder, total, failed int) {
	t.Helper()
	gotTotal, gotFailed := rec.Flushes()
	if gotTotal != total || gotFailed != failed {
		t.Fatalf("expected %d flushes (%d failed), got %d (%d failed)", total, failed, gotTotal, gotFailed)
	}
}
