package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"skillpath-backend/internal/middleware"
	"skillpath-backend/internal/models"
)

type pathService interface {
	RequestGeneration(ctx context.Context, sessionID uuid.UUID, profile models.LearnerProfile) (*models.GeneratePathResponse, error)
	List(ctx context.Context, sessionID uuid.UUID) ([]*models.LearningPath, error)
	Get(ctx context.Context, sessionID, pathID uuid.UUID) (*models.LearningPath, error)
	Document(ctx context.Context, sessionID, pathID uuid.UUID) (*models.PathDocument, error)
	Current(ctx context.Context, sessionID uuid.UUID) (string, error)
	Job(ctx context.Context, sessionID, jobID uuid.UUID) (*models.Job, error)
}

type PathHandler struct {
	paths pathService
}

func NewPathHandler(paths pathService) *PathHandler {
	return &PathHandler{paths: paths}
}

func (h *PathHandler) Generate(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var profile models.LearnerProfile
	if err := decodeJSON(w, r, &profile); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_JSON", "Request body is not valid JSON", r))
		return
	}

	resp, err := h.paths.RequestGeneration(r.Context(), sessionID, profile)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, resp)
}

func (h *PathHandler) List(w http.ResponseWriter, r *http.Request) {
	paths, err := h.paths.List(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if paths == nil {
		paths = []*models.LearningPath{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"paths": paths})
}

// Current returns the markdown kept in session storage for the caller.
func (h *PathHandler) Current(w http.ResponseWriter, r *http.Request) {
	markdown, err := h.paths.Current(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"markdown": markdown})
}

func (h *PathHandler) Get(w http.ResponseWriter, r *http.Request) {
	pathID, ok := urlUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_ID", "Invalid path ID", r))
		return
	}

	path, err := h.paths.Get(r.Context(), middleware.GetSessionID(r.Context()), pathID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, path)
}

func (h *PathHandler) Document(w http.ResponseWriter, r *http.Request) {
	pathID, ok := urlUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_ID", "Invalid path ID", r))
		return
	}

	doc, err := h.paths.Document(r.Context(), middleware.GetSessionID(r.Context()), pathID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *PathHandler) Job(w http.ResponseWriter, r *http.Request) {
	jobID, ok := urlUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_ID", "Invalid job ID", r))
		return
	}

	job, err := h.paths.Job(r.Context(), middleware.GetSessionID(r.Context()), jobID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}
