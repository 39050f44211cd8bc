package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"skillpath-backend/internal/middleware"
	"skillpath-backend/internal/models"
	"skillpath-backend/internal/repository"
	"skillpath-backend/internal/services"
)

type quizService interface {
	View(ctx context.Context, key repository.QuizKey) (*services.QuizView, error)
	Select(ctx context.Context, key repository.QuizKey, question, option int) (*services.QuizView, error)
	Submit(ctx context.Context, key repository.QuizKey) (*services.QuizView, error)
	Reset(ctx context.Context, key repository.QuizKey) (*services.QuizView, error)
	Attempts(ctx context.Context, sessionID, pathID uuid.UUID) ([]*models.QuizAttempt, error)
}

type QuizHandler struct {
	quizzes quizService
}

func NewQuizHandler(quizzes quizService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes}
}

// quizKey reads {id} and {index}. It writes the 400 itself and reports false
// when either is malformed.
func quizKey(w http.ResponseWriter, r *http.Request) (repository.QuizKey, bool) {
	pathID, ok := urlUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_ID", "Invalid path ID", r))
		return repository.QuizKey{}, false
	}
	index, ok := urlInt(r, "index")
	if !ok || index < 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_INDEX", "Invalid quiz index", r))
		return repository.QuizKey{}, false
	}
	return repository.QuizKey{
		SessionID: middleware.GetSessionID(r.Context()),
		PathID:    pathID,
		Index:     index,
	}, true
}

func (h *QuizHandler) View(w http.ResponseWriter, r *http.Request) {
	key, ok := quizKey(w, r)
	if !ok {
		return
	}
	h.respond(w, r)(h.quizzes.View(r.Context(), key))
}

func (h *QuizHandler) Select(w http.ResponseWriter, r *http.Request) {
	key, ok := quizKey(w, r)
	if !ok {
		return
	}

	var req models.SelectAnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_JSON", "Request body is not valid JSON", r))
		return
	}

	h.respond(w, r)(h.quizzes.Select(r.Context(), key, req.Question, req.Option))
}

func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	key, ok := quizKey(w, r)
	if !ok {
		return
	}
	h.respond(w, r)(h.quizzes.Submit(r.Context(), key))
}

func (h *QuizHandler) Reset(w http.ResponseWriter, r *http.Request) {
	key, ok := quizKey(w, r)
	if !ok {
		return
	}
	h.respond(w, r)(h.quizzes.Reset(r.Context(), key))
}

func (h *QuizHandler) Attempts(w http.ResponseWriter, r *http.Request) {
	pathID, ok := urlUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_ID", "Invalid path ID", r))
		return
	}

	attempts, err := h.quizzes.Attempts(r.Context(), middleware.GetSessionID(r.Context()), pathID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if attempts == nil {
		attempts = []*models.QuizAttempt{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"attempts": attempts})
}

func (h *QuizHandler) respond(w http.ResponseWriter, r *http.Request) func(*services.QuizView, error) {
	return func(view *services.QuizView, err error) {
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
