package websocket

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"skillpath-backend/internal/logger"
)

type stubTokens struct {
	id  uuid.UUID
	err error
}

func (s stubTokens) ParseToken(string) (uuid.UUID, error) { return s.id, s.err }

func TestHandleWebSocket_RejectsBadTokens(t *testing.T) {
	tests := []struct {
		name   string
		target string
		tokens stubTokens
	}{
		{"missing token", "/api/v1/ws", stubTokens{id: uuid.New()}},
		{"invalid token", "/api/v1/ws?token=bad", stubTokens{err: errors.New("invalid")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHub(nil, tc.tokens, logger.Nop())

			rr := httptest.NewRecorder()
			h.HandleWebSocket(rr, httptest.NewRequest(http.MethodGet, tc.target, nil))

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
			}
		})
	}
}

func TestHandleWebSocket_ValidTokenWithoutUpgrade(t *testing.T) {
	sessionID := uuid.New()
	h := NewHub(nil, stubTokens{id: sessionID}, logger.Nop())

	rr := httptest.NewRecorder()
	h.HandleWebSocket(rr, httptest.NewRequest(http.MethodGet, "/api/v1/ws?token=ok", nil))

	// A plain GET is refused by the upgrader and never registered.
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if h.Connections(sessionID) != 0 {
		t.Fatalf("expected no registered connection")
	}
}
