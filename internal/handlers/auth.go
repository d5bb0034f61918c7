package handlers

import (
	"net/http"

	"github.com/diewo77/computer-store/auth"
	"github.com/diewo77/computer-store/httpx"
	"github.com/diewo77/computer-store/internal/session"
)

type AuthHandler struct {
	sessions *session.Manager
}

func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login starts a session and sets the signed cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := decodeInput(w, r, &in); err != nil {
		reply(w, r, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	s, err := h.sessions.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	auth.CreateSession(w, s.ID.String())
	httpx.JSON(w, http.StatusOK, s)
}

// Logout ends the live session. It is mounted behind RequireAuth.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout()
	auth.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

// Current returns the live session. It is mounted behind RequireAuth.
func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Current()
	if !ok {
		reply(w, r, http.StatusUnauthorized, "auth_required", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}
