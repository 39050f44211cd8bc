package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"skillpath-backend/internal/logger"
	"skillpath-backend/internal/models"
)

type tokenIssuer interface {
	IssueToken() (uuid.UUID, string, time.Time, error)
}

type SessionHandler struct {
	issuer tokenIssuer
	log    *logger.Logger
}

func NewSessionHandler(issuer tokenIssuer, log *logger.Logger) *SessionHandler {
	return &SessionHandler{issuer: issuer, log: log}
}

// Create issues an anonymous session. Every later /api/v1 call carries the
// returned token.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, token, expiresAt, err := h.issuer.IssueToken()
	if err != nil {
		h.log.Error("issue session token", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Could not start a session", r))
		return
	}

	writeJSON(w, http.StatusCreated, models.Session{ID: id, Token: token, ExpiresAt: expiresAt})
}
