package http

import (
	nethttp "net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/preston-bernstein/matchday-service/internal/http/handlers"
	"github.com/preston-bernstein/matchday-service/internal/http/middleware"
	"github.com/preston-bernstein/matchday-service/internal/metrics"
)

// RouterConfig controls cross-cutting HTTP behavior.
type RouterConfig struct {
	AllowedOrigins []string
	Logger         *zerolog.Logger
	Metrics        *metrics.Recorder
}

// NewRouter registers routes on a gorilla/mux router and wraps it with CORS,
// request logging and panic recovery.
func NewRouter(h *handlers.Handler, cfg RouterConfig) nethttp.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := mux.NewRouter()
	r.NotFoundHandler = nethttp.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = nethttp.HandlerFunc(h.MethodNotAllowed)

	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)

	r.HandleFunc("/matches", h.Matches).Methods(nethttp.MethodGet)
	r.HandleFunc("/matches/{id}", h.MatchByID).Methods(nethttp.MethodGet)
	r.HandleFunc("/teams/{id}", h.TeamByID).Methods(nethttp.MethodGet)
	r.HandleFunc("/players", h.Players).Methods(nethttp.MethodGet)
	r.HandleFunc("/players/{id}", h.PlayerByID).Methods(nethttp.MethodGet)

	r.HandleFunc("/favorites", h.ListFavorites).Methods(nethttp.MethodGet)
	r.HandleFunc("/favorites", h.AddFavorite).Methods(nethttp.MethodPost)
	r.HandleFunc("/favorites/{id}", h.FavoriteStatus).Methods(nethttp.MethodGet)
	r.HandleFunc("/favorites/{id}", h.RemoveFavorite).Methods(nethttp.MethodDelete)

	r.HandleFunc("/session", h.CurrentSession).Methods(nethttp.MethodGet)
	r.HandleFunc("/session", h.Logout).Methods(nethttp.MethodDelete)
	r.HandleFunc("/session/login", h.Login).Methods(nethttp.MethodPost)
	r.HandleFunc("/session/register", h.Register).Methods(nethttp.MethodPost)

	r.Handle("/ws", handlers.NewStream(h, originChecker(origins))).Methods(nethttp.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodDelete, nethttp.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})

	return middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics, middleware.Recovery(c.Handler(r)))
}

// originChecker applies the CORS allow-list to websocket upgrades, which
// browsers do not preflight.
func originChecker(origins []string) func(r *nethttp.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*nethttp.Request) bool { return true }
		}
		allowed[o] = struct{}{}
	}
	return func(r *nethttp.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
