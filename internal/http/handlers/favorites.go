package handlers

import (
	nethttp "net/http"
	"strings"

	"github.com/preston-bernstein/matchday-service/internal/domain/matches"
)

type favoritesResponse struct {
	Favorites []matches.MatchEvent `json:"favorites"`
	Count     int                  `json:"count"`
}

type favoriteStatusResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

func (h *Handler) writeFavorites(w nethttp.ResponseWriter, status int) {
	items := h.favorites.List()
	writeJSON(w, status, favoritesResponse{Favorites: items, Count: len(items)}, h.logger)
}

// ListFavorites returns saved matches in insertion order.
func (h *Handler) ListFavorites(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeFavorites(w, nethttp.StatusOK)
}

// AddFavorite saves the posted match.
func (h *Handler) AddFavorite(w nethttp.ResponseWriter, r *nethttp.Request) {
	var match matches.MatchEvent
	if err := decodeBody(w, r, &match); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match body", h.logger)
		return
	}
	match.ID = strings.TrimSpace(match.ID)
	if match.ID == "" {
		writeError(w, r, nethttp.StatusBadRequest, "match id required", h.logger)
		return
	}
	h.favorites.Add(r.Context(), match)
	h.writeFavorites(w, nethttp.StatusCreated)
}

// FavoriteStatus reports membership for one id.
func (h *Handler) FavoriteStatus(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match id", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, favoriteStatusResponse{ID: id, Favorite: h.favorites.IsFavorite(id)}, h.logger)
}

// RemoveFavorite deletes one id. Removing an unknown id is not an error.
func (h *Handler) RemoveFavorite(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match id", h.logger)
		return
	}
	h.favorites.Remove(r.Context(), id)
	h.writeFavorites(w, nethttp.StatusOK)
}
