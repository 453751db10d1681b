package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/preston-bernstein/matchday-service/internal/config"
	"github.com/preston-bernstein/matchday-service/internal/favorites"
	"github.com/preston-bernstein/matchday-service/internal/gateway"
	httpserver "github.com/preston-bernstein/matchday-service/internal/http"
	"github.com/preston-bernstein/matchday-service/internal/http/handlers"
	"github.com/preston-bernstein/matchday-service/internal/logging"
	"github.com/preston-bernstein/matchday-service/internal/metrics"
	"github.com/preston-bernstein/matchday-service/internal/refresher"
	"github.com/preston-bernstein/matchday-service/internal/session"
	"github.com/preston-bernstein/matchday-service/internal/state"
	"github.com/preston-bernstein/matchday-service/internal/storage"
)

var metricsSetup = metrics.Setup

// Refresher is the background loop the server starts and stops.
type Refresher interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

type Server struct {
	cfg           config.Config
	logger        *zerolog.Logger
	metrics       *metrics.Recorder
	backend       storage.Backend
	state         *state.Store
	favorites     *favorites.Store
	refresher     Refresher
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error

	// baseCtx parents every request; cancelling it ends websocket streams,
	// which http.Server.Shutdown does not track.
	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// New wires storage, the gateway, shared state and the HTTP surface from cfg.
func New(cfg config.Config, logger *zerolog.Logger) *Server {
	return newServerWithSource(cfg, logger, nil)
}

func newServerWithSource(cfg config.Config, logger *zerolog.Logger, source gateway.Source) *Server {
	recorder, metricsSrv, metricsStop := buildMetrics(cfg, logger)
	if source == nil {
		source = selectSource(cfg, logger)
	}
	backend := buildStorage(context.Background(), cfg, logger)

	gw := gateway.New(source, gateway.Config{
		LeagueID: cfg.SportsDB.LeagueID,
		Season:   cfg.SportsDB.Season,
	}, logger, recorder)

	st := state.New()
	favs := favorites.New(backend, cfg.Storage.FavoritesKey, logger, recorder)
	favs.OnChange(st.SetFavorites)

	ref := refresher.New(gw, st, favs, logger, recorder, refresher.Config{
		Interval:     cfg.RefreshInterval,
		MatchesLimit: cfg.MatchesLimit,
	})

	h := handlers.NewHandler(handlers.Deps{
		Gateway:   gw,
		Refresher: ref,
		State:     st,
		Favorites: favs,
		Sessions:  session.NewManager(st, logger),
		Logger:    logger,
	})
	router := httpserver.NewRouter(h, httpserver.RouterConfig{
		AllowedOrigins: cfg.CORSOrigins,
		Logger:         logger,
		Metrics:        recorder,
	})

	s := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		backend:       backend,
		state:         st,
		favorites:     favs,
		refresher:     ref,
		metricsServer: metricsSrv,
		metricsStop:   metricsStop,
	}
	s.baseCtx, s.cancelBase = context.WithCancel(context.Background())
	s.httpServer = newNetHTTPServer(":"+cfg.Port, router, func(net.Listener) context.Context { return s.baseCtx })
	return s
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *zerolog.Logger, httpSrv httpServer, ref Refresher, backend storage.Backend) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:        cfg,
		logger:     logger,
		backend:    backend,
		httpServer: httpSrv,
		refresher:  ref,
		baseCtx:    ctx,
		cancelBase: cancel,
	}
}

// Run loads saved favorites, starts the HTTP server and refresher, then waits
// for context cancellation to shut down gracefully. Favorites are hydrated
// before the listener opens so no request can mutate an unloaded set.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	if s.favorites != nil {
		s.favorites.Hydrate(ctx)
	}
	s.startMetrics()
	s.startServer(stop)
	s.refresher.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown drains in order: streams and HTTP, the refresher, then
// storage so the last favorites flush lands before the backend closes.
func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.cancelBase != nil {
		s.cancelBase()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if err := s.refresher.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop refresher", err)
	}

	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			logging.Warn(s.logger, "storage close failed", "error", err.Error())
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err.Error())
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err.Error())
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *zerolog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err.Error())
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{srv: &http.Server{
			Addr:              ":" + recCfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		}}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *zerolog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", "addr", srv.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(logger, name+" server failed", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
