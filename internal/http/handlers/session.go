package handlers

import (
	"errors"
	nethttp "net/http"

	"github.com/preston-bernstein/matchday-service/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Login starts a local session.
func (h *Handler) Login(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid login body", h.logger)
		return
	}
	u, err := h.sessions.Login(req.Email, req.Password)
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, u, h.logger)
}

// Register validates the sign-up form and starts a session.
func (h *Handler) Register(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req registerRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid registration body", h.logger)
		return
	}
	u, err := h.sessions.Register(req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusCreated, u, h.logger)
}

// CurrentSession returns the signed-in user.
func (h *Handler) CurrentSession(w nethttp.ResponseWriter, r *nethttp.Request) {
	u, err := h.sessions.Current()
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, u, h.logger)
}

// Logout ends the session.
func (h *Handler) Logout(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.sessions.Logout()
	w.WriteHeader(nethttp.StatusNoContent)
}

func (h *Handler) writeSessionError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	switch {
	case session.IsValidation(err):
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
	case errors.Is(err, session.ErrNotLoggedIn):
		writeError(w, r, nethttp.StatusUnauthorized, err.Error(), h.logger)
	default:
		writeError(w, r, nethttp.StatusInternalServerError, "session error", h.logger)
	}
}
