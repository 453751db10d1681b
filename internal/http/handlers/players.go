package handlers

import (
	"context"
	nethttp "net/http"

	"github.com/preston-bernstein/matchday-service/internal/domain/players"
	"github.com/preston-bernstein/matchday-service/internal/http/requestutil"
	"github.com/preston-bernstein/matchday-service/internal/logging"
)

type playersResponse struct {
	Players []players.Player `json:"players"`
	Count   int              `json:"count"`
	Loading bool             `json:"loading"`
}

// Players returns the held top players, re-fetching when asked. A q
// parameter narrows the list by name, team, nationality or position.
func (h *Handler) Players(w nethttp.ResponseWriter, r *nethttp.Request) {
	query := requestutil.SearchQuery(r)
	if requestutil.WantsRefresh(r) && h.refresher != nil {
		// The refresh publishes to shared state, so a client hanging up must not abort it.
		items := h.refresher.RefreshPlayers(context.WithoutCancel(r.Context()))
		logging.Info(loggerFromContext(r, h.logger), "refreshed players", logging.FieldCount, len(items))
		items = players.Filter(items, query)
		writeJSON(w, nethttp.StatusOK, playersResponse{Players: items, Count: len(items)}, h.logger)
		return
	}
	snap := h.state.Snapshot()
	items := players.Filter(snap.Players, query)
	writeJSON(w, nethttp.StatusOK, playersResponse{
		Players: items,
		Count:   len(items),
		Loading: snap.PlayersLoading,
	}, h.logger)
}

// PlayerByID looks a player up through the gateway.
func (h *Handler) PlayerByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid player id", h.logger)
		return
	}
	player, found := h.gateway.PlayerDetails(r.Context(), id)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "player not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, player, h.logger)
}

// TeamByID looks a team up through the gateway.
func (h *Handler) TeamByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team id", h.logger)
		return
	}
	team, found := h.gateway.TeamDetails(r.Context(), id)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "team not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, team, h.logger)
}
