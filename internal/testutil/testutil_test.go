package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/matchday-service/internal/metrics"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 8, 17, 15, 0, 0, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestFixturesHelper(t *testing.T) {
	m := SampleMatch("2052")
	if m.ID != "2052" || m.HomeTeamID == "" || m.AwayTeamID == "" {
		t.Fatalf("unexpected match fixture %+v", m)
	}
	list := SampleMatches(3)
	if len(list) != 3 || list[2].ID != "3" {
		t.Fatalf("unexpected matches %+v", list)
	}
	team := SampleTeam("133604")
	if team.ID != "133604" || team.Name == "" {
		t.Fatalf("unexpected team fixture %+v", team)
	}
	roster := SampleRoster("133604", 2)
	if len(roster) != 2 || roster[1].ID != "133604-2" || roster[1].TeamID != "133604" {
		t.Fatalf("unexpected roster %+v", roster)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	rr = ServeRequest(handler, httptest.NewRequest(http.MethodGet, "/req", nil))
	AssertStatus(t, rr, http.StatusCreated)
}

func TestServerStubs(t *testing.T) {
	r := &StubRefresher{StopErr: errors.New("stop"), Started: make(chan struct{})}
	r.Start(context.Background())
	r.Start(context.Background())
	select {
	case <-r.Started:
	default:
		t.Fatalf("expected started channel closed")
	}
	if err := r.Stop(context.Background()); !errors.Is(err, r.StopErr) {
		t.Fatalf("expected stop error")
	}
	if r.StartCalls.Load() != 2 || r.StopCalls.Load() != 1 {
		t.Fatalf("unexpected call counts start=%d stop=%d", r.StartCalls.Load(), r.StopCalls.Load())
	}

	sh := &StubHTTPServer{AddrVal: ":1", HandlerVal: http.NewServeMux(), ListenErr: errors.New("boom")}
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	if sh.ListenCalls.Load() != 1 || sh.ShutdownCalls.Load() != 1 || sh.Addr() != ":1" || sh.Handler() == nil {
		t.Fatalf("unexpected stub server state")
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{})}
	if err := b.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed, got %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b2 := &BlockingHTTPServer{Unblock: make(chan struct{})}
	if err := b2.Shutdown(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled shutdown, got %v", err)
	}

	e := &ErrHTTPServer{}
	if err := e.ListenAndServe(); !errors.Is(err, ErrListen) {
		t.Fatalf("expected listen failure")
	}
	_ = e.Shutdown(context.Background())
	if e.ShutdownCalls.Load() != 1 || e.Addr() == "" || e.Handler() == nil {
		t.Fatalf("unexpected err server state")
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info().Str("k", "v").Msg("hello")
	if !strings.Contains(buf.String(), `"k":"v"`) {
		t.Fatalf("expected buffered json log output, got %s", buf.String())
	}
	rec := metrics.NewRecorder()
	rec.RecordGatewayCall("team_details", time.Millisecond, nil)
	rec.RecordGatewayCall("team_details", time.Millisecond, errors.New("boom"))
	AssertGatewayCalls(t, rec, "team_details", 2, 1)
	AssertGatewayCalls(t, rec, "player_details", 0, 0)

	rec.RecordFlush(time.Millisecond, nil)
	AssertFlushes(t, rec, 1, 0)
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 8, 17, 15, 0, 0, 0, time.UTC)
	c := NewClock(start)
	c.Advance(90 * time.Minute)
	if got := c.Now(); !got.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("unexpected clock time %v", got)
	}
}

func TestServeVarsAndJSON(t *testing.T) {
	var gotID, gotBody string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = mux.Vars(r)["id"]
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		gotBody = payload["name"]
		w.WriteHeader(http.StatusAccepted)
	})

	rr := ServeVars(h, http.MethodGet, "/teams/133604", map[string]string{"id": "133604"})
	AssertStatus(t, rr, http.StatusAccepted)
	if gotID != "133604" {
		t.Fatalf("expected path var passed through, got %q", gotID)
	}

	rr = ServeJSON(t, h, http.MethodPost, "/teams", map[string]string{"name": "Arsenal"})
	AssertStatus(t, rr, http.StatusAccepted)
	if gotBody != "Arsenal" {
		t.Fatalf("expected json body decoded, got %q", gotBody)
	}
}
