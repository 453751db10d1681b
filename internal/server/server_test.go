package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/matchday-service/internal/config"
	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/favorites"
	"github.com/preston-bernstein/matchday-service/internal/metrics"
	"github.com/preston-bernstein/matchday-service/internal/sportsdb"
	"github.com/preston-bernstein/matchday-service/internal/sportsdb/fixture"
	"github.com/preston-bernstein/matchday-service/internal/storage"
	"github.com/preston-bernstein/matchday-service/internal/testutil"
)

func fixtureConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:   "0",
		Source: sourceFixture,
		Storage: config.StorageConfig{
			Driver:       storage.DriverFile,
			Path:         t.TempDir(),
			FavoritesKey: "favorites",
		},
	}
}

func TestNewServesFixtureData(t *testing.T) {
	srv := New(fixtureConfig(t), nil)
	h := srv.Handler()

	testutil.AssertStatus(t, testutil.Serve(h, http.MethodGet, "/health", nil), http.StatusOK)

	rr := testutil.Serve(h, http.MethodGet, "/matches?refresh=true", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp struct {
		Count int `json:"count"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Count != 20 {
		t.Fatalf("expected 20 fixture matches, got %d", resp.Count)
	}

	rr = testutil.Serve(h, http.MethodGet, "/players?refresh=true", nil)
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Count != 30 {
		t.Fatalf("expected 30 top players, got %d", resp.Count)
	}
}

func TestFavoritesSurviveRestart(t *testing.T) {
	cfg := fixtureConfig(t)
	first := New(cfg, nil)
	body := `{"id":"fixture-3","homeTeam":"Arsenal","awayTeam":"Chelsea","date":"2024-08-20"}`
	rr := testutil.Serve(first.Handler(), http.MethodPost, "/favorites", strings.NewReader(body))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	_ = first.backend.Close()

	second := New(cfg, nil)
	if n := second.favorites.Hydrate(context.Background()); n != 1 {
		t.Fatalf("expected 1 hydrated favorite, got %d", n)
	}
	if !second.favorites.IsFavorite("fixture-3") {
		t.Fatalf("expected persisted favorite")
	}
	if got := second.state.Snapshot().Favorites; len(got) != 1 {
		t.Fatalf("expected favorites mirrored into state, got %d", len(got))
	}
}

func TestSelectSource(t *testing.T) {
	if _, ok := selectSource(config.Config{Source: "fixture"}, nil).(*fixture.Source); !ok {
		t.Fatalf("expected fixture source")
	}
	if _, ok := selectSource(config.Config{}, nil).(*sportsdb.Client); !ok {
		t.Fatalf("expected sportsdb client by default")
	}
	logger, buf := testutil.NewBufferLogger()
	if _, ok := selectSource(config.Config{Source: "espn"}, logger).(*fixture.Source); !ok {
		t.Fatalf("expected fixture fallback for unknown source")
	}
	if !strings.Contains(buf.String(), "unknown source") {
		t.Fatalf("expected warning log, got %s", buf.String())
	}
}

func TestBuildStorageFallsBackToMemory(t *testing.T) {
	orig := openStorage
	defer func() { openStorage = orig }()
	openStorage = func(context.Context, storage.Config) (storage.Backend, error) {
		return nil, errors.New("connection refused")
	}

	logger, buf := testutil.NewBufferLogger()
	backend := buildStorage(context.Background(), config.Config{Storage: config.StorageConfig{Driver: "postgres"}}, logger)
	if _, ok := backend.(*storage.MemoryKV); !ok {
		t.Fatalf("expected memory fallback, got %T", backend)
	}
	if !strings.Contains(buf.String(), "storage unavailable") {
		t.Fatalf("expected fallback log, got %s", buf.String())
	}
}

func TestBuildMetricsFallsBackOnSetupError(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(context.Context, metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("exporter down")
	}

	rec, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil)
	if rec == nil || srv != nil || stop != nil {
		t.Fatalf("expected bare recorder only, got rec=%v srv=%v", rec, srv)
	}
}

func TestBuildMetricsEnabledMountsServer(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(context.Context, metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), http.NotFoundHandler(), func(context.Context) error { return nil }, nil
	}

	_, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true, Port: "9999"}}, nil)
	if srv == nil || srv.Addr() != ":9999" {
		t.Fatalf("expected metrics server on :9999, got %+v", srv)
	}
	if stop == nil {
		t.Fatalf("expected shutdown func")
	}
}

func TestRunStartsAndStopsComponents(t *testing.T) {
	httpSrv := &testutil.StubHTTPServer{AddrVal: ":0", ListenErr: http.ErrServerClosed}
	ref := &testutil.StubRefresher{Started: make(chan struct{})}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, ref, storage.NewMemoryKV())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	select {
	case <-ref.Started:
	case <-time.After(time.Second):
		t.Fatalf("refresher was not started")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("run did not return after cancel")
	}
	if ref.StopCalls.Load() != 1 || httpSrv.ShutdownCalls.Load() != 1 {
		t.Fatalf("expected stop and shutdown once, got stop=%d shutdown=%d", ref.StopCalls.Load(), httpSrv.ShutdownCalls.Load())
	}
	if srv.baseCtx.Err() == nil {
		t.Fatalf("expected request base context cancelled")
	}
}

func TestRunStopsWhenListenFails(t *testing.T) {
	httpSrv := &testutil.ErrHTTPServer{}
	ref := &testutil.StubRefresher{}
	logger, buf := testutil.NewBufferLogger()
	srv := newServerWithDeps(config.Config{}, logger, httpSrv, ref, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("run did not return after listen failure")
	}
	if httpSrv.ShutdownCalls.Load() != 1 {
		t.Fatalf("expected shutdown after listen failure")
	}
	if !strings.Contains(buf.String(), "http server failed") {
		t.Fatalf("expected failure log, got %s", buf.String())
	}
}

func TestGracefulShutdownHonorsTimeout(t *testing.T) {
	orig := shutdownTimeout
	shutdownTimeout = 20 * time.Millisecond
	defer func() { shutdownTimeout = orig }()

	blocking := &testutil.BlockingHTTPServer{Unblock: make(chan struct{})}
	ref := &testutil.StubRefresher{StopErr: context.DeadlineExceeded}
	logger, buf := testutil.NewBufferLogger()
	srv := newServerWithDeps(config.Config{}, logger, blocking, ref, nil)

	start := time.Now()
	srv.gracefulShutdown()
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("shutdown took too long: %v", elapsed)
	}
	out := buf.String()
	if !strings.Contains(out, "graceful shutdown failed") || !strings.Contains(out, "failed to stop refresher") {
		t.Fatalf("expected shutdown failures logged, got %s", out)
	}
}

func TestBaseContextReachesHandlers(t *testing.T) {
	srv := New(fixtureConfig(t), nil)
	ns, ok := srv.httpServer.(netHTTPServer)
	if !ok {
		t.Fatalf("expected net/http server, got %T", srv.httpServer)
	}
	ts := httptest.NewUnstartedServer(ns.Handler())
	ts.Config.BaseContext = ns.srv.BaseContext
	ts.Start()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 before shutdown, got %d", resp.StatusCode)
	}

	srv.cancelBase()
	resp, err = http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while shutting down, got %d", resp.StatusCode)
	}
}

type hydrationCheckServer struct {
	testutil.StubHTTPServer
	favs           *favorites.Store
	hydratedAtBoot chan bool
}

func (h *hydrationCheckServer) ListenAndServe() error {
	h.hydratedAtBoot <- h.favs.Hydrated()
	return http.ErrServerClosed
}

func TestRunHydratesFavoritesBeforeListening(t *testing.T) {
	kv := storage.NewMemoryKV()
	seed, _ := json.Marshal([]matches.MatchEvent{testutil.SampleMatch("A"), testutil.SampleMatch("B")})
	_ = kv.Set(context.Background(), favorites.DefaultKey, seed)

	favs := favorites.New(kv, "", nil, nil)
	httpSrv := &hydrationCheckServer{favs: favs, hydratedAtBoot: make(chan bool, 1)}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, &testutil.StubRefresher{}, kv)
	srv.favorites = favs

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	select {
	case ok := <-httpSrv.hydratedAtBoot:
		if !ok {
			t.Fatalf("expected favorites hydrated before the listener started")
		}
	case <-time.After(time.Second):
		t.Fatalf("listener never started")
	}
	if len(favs.List()) != 2 {
		t.Fatalf("expected saved favorites in memory, got %+v", favs.List())
	}
	cancel()
	<-done
}
