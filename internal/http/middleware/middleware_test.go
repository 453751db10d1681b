package middleware

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/matchday-service/internal/logging"
	"github.com/preston-bernstein/matchday-service/internal/metrics"
	"github.com/preston-bernstein/matchday-service/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestIDAndRecordsMetrics(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected request id in context")
		}
		if logging.FromContext(r.Context(), nil) == nil {
			t.Fatalf("expected request logger in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec, next)
	rr := testutil.Serve(handler, http.MethodGet, "/matches/2052", nil)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if rec.GatewayCalls("http") != 0 {
		t.Fatalf("expected gateway metrics untouched")
	}
	out := buf.String()
	if !strings.Contains(out, `"status_code":418`) || !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("expected warn-level completion log, got %s", out)
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenMissing(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(nil, nil, next)
	rr := testutil.Serve(handler, http.MethodGet, "/matches?refresh=true", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("X-Request-ID"); got == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}

func TestLoggingMiddlewareKeepsValidIncomingID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got != "abc-123" {
			t.Fatalf("expected incoming id, got %s", got)
		}
	})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := testutil.ServeRequest(LoggingMiddleware(nil, nil, next), req)
	if rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected id echoed back")
	}
}

func TestRecoveryReturns500(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})
	rr := testutil.Serve(LoggingMiddleware(logger, nil, Recovery(boom)), http.MethodGet, "/players", nil)
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	if !strings.Contains(buf.String(), "recovered from panic") {
		t.Fatalf("expected panic log, got %s", buf.String())
	}
}

type hijackableRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackableRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	return nil, nil, nil
}

func TestResponseWriterHijack(t *testing.T) {
	inner := &hijackableRecorder{ResponseRecorder: httptest.NewRecorder()}
	ww := &responseWriter{ResponseWriter: inner, status: http.StatusOK}
	if _, _, err := ww.Hijack(); err != nil {
		t.Fatalf("expected hijack to pass through, got %v", err)
	}
	if !inner.hijacked || ww.status != http.StatusSwitchingProtocols {
		t.Fatalf("expected hijack to be forwarded and status recorded")
	}

	plain := &responseWriter{ResponseWriter: httptest.NewRecorder()}
	if _, _, err := plain.Hijack(); err == nil {
		t.Fatalf("expected error when underlying writer cannot hijack")
	}
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := &responseWriter{ResponseWriter: rr, status: http.StatusOK}
	_, _ = ww.Write([]byte("x"))
	ww.WriteHeader(http.StatusInternalServerError)
	if ww.status != http.StatusOK {
		t.Fatalf("expected implicit 200 to stick, got %d", ww.status)
	}
	ww.Flush()
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/matches", want: "/matches"},
		{in: "/matches/123", want: "/matches/:id"},
		{in: "/teams/133604", want: "/teams/:id"},
		{in: "/players/34145937", want: "/players/:id"},
		{in: "/favorites/9", want: "/favorites/:id"},
		{in: "/session/login", want: "/session/login"},
		{in: "/health", want: "/health"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Fatalf("normalizePath(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}

	ctx = withRequestID(ctx, "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
}
