package handlers

import (
	"context"
	nethttp "net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/domain/players"
	"github.com/preston-bernstein/matchday-service/internal/domain/teams"
	"github.com/preston-bernstein/matchday-service/internal/domain/users"
	"github.com/preston-bernstein/matchday-service/internal/refresher"
	"github.com/preston-bernstein/matchday-service/internal/state"
)

// Gateway answers single-item lookups.
type Gateway interface {
	MatchDetails(ctx context.Context, id string) (matches.MatchEvent, bool)
	TeamDetails(ctx context.Context, id string) (teams.Team, bool)
	PlayerDetails(ctx context.Context, id string) (players.Player, bool)
}

// Refresher re-fetches the held lists on demand and reports loop health.
type Refresher interface {
	RefreshMatches(ctx context.Context) []matches.MatchEvent
	RefreshPlayers(ctx context.Context) []players.Player
	Status() refresher.Status
}

// StateReader exposes the shared state.
type StateReader interface {
	Snapshot() state.State
	Subscribe(buffer int) (<-chan state.Event, func())
}

// Favorites is the saved-match store.
type Favorites interface {
	List() []matches.MatchEvent
	Add(ctx context.Context, match matches.MatchEvent)
	Remove(ctx context.Context, id string)
	IsFavorite(id string) bool
}

// Sessions manages the local sign-in.
type Sessions interface {
	Login(email, password string) (users.User, error)
	Register(name, email, password, confirm string) (users.User, error)
	Logout()
	Current() (users.User, error)
}

// Deps bundles handler collaborators. Refresher may be nil.
type Deps struct {
	Gateway   Gateway
	Refresher Refresher
	State     StateReader
	Favorites Favorites
	Sessions  Sessions
	Logger    *zerolog.Logger
}

// Handler serves the REST surface.
type Handler struct {
	gateway   Gateway
	refresher Refresher
	state     StateReader
	favorites Favorites
	sessions  Sessions
	logger    *zerolog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(d Deps) *Handler {
	return &Handler{
		gateway:   d.Gateway,
		refresher: d.Refresher,
		state:     d.State,
		favorites: d.Favorites,
		sessions:  d.Sessions,
		logger:    d.Logger,
	}
}

// Health reports liveness.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether favorites are loaded and the first refresh finished.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.refresher == nil || h.refresher.Status().IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, "not ready", h.logger)
}

// pathID returns the {id} route variable, rejecting blanks and whitespace.
func pathID(r *nethttp.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if id == "" || strings.ContainsAny(id, " \t/") {
		return "", false
	}
	return id, true
}

// NotFound is the JSON fallback for unknown routes.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed is the JSON fallback for known routes hit with the wrong verb.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}
