package handlers

import (
	"context"
	nethttp "net/http"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
	"github.com/preston-bernstein/matchday-service/internal/http/requestutil"
	"github.com/preston-bernstein/matchday-service/internal/logging"
)

type matchesResponse struct {
	Matches []matches.MatchEvent `json:"matches"`
	Count   int                  `json:"count"`
	Loading bool                 `json:"loading"`
}

type matchDetailResponse struct {
	Match     matches.MatchEvent `json:"match"`
	HomeBadge string             `json:"homeBadge"`
	AwayBadge string             `json:"awayBadge"`
	Favorite  bool               `json:"favorite"`
}

// Matches returns the held upcoming matches, re-fetching when asked.
func (h *Handler) Matches(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	if requestutil.WantsRefresh(r) && h.refresher != nil {
		// The refresh publishes to shared state, so a client hanging up must not abort it.
		items := h.refresher.RefreshMatches(context.WithoutCancel(r.Context()))
		logging.Info(logger, "refreshed matches", logging.FieldCount, len(items))
		writeJSON(w, nethttp.StatusOK, matchesResponse{Matches: items, Count: len(items)}, h.logger)
		return
	}

	snap := h.state.Snapshot()
	writeJSON(w, nethttp.StatusOK, matchesResponse{
		Matches: snap.Matches,
		Count:   len(snap.Matches),
		Loading: snap.MatchesLoading,
	}, h.logger)
}

// MatchByID looks a match up through the gateway.
func (h *Handler) MatchByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match id", h.logger)
		return
	}
	match, found := h.gateway.MatchDetails(r.Context(), id)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "match not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, matchDetailResponse{
		Match:     match,
		HomeBadge: match.HomeBadge(),
		AwayBadge: match.AwayBadge(),
		Favorite:  h.favorites != nil && h.favorites.IsFavorite(match.ID),
	}, h.logger)
}
