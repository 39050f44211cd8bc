package handlers

import (
	"context"
	"errors"
	"net/http"

	"skillpath-backend/internal/logger"
	"skillpath-backend/internal/middleware"
	"skillpath-backend/internal/models"
	"skillpath-backend/internal/services"
)

type planGenerator interface {
	GenerateNow(ctx context.Context, profile models.LearnerProfile) (*models.GeneratedPlan, error)
}

// LegacyHandler serves POST /api/generate-path with the {success, data}
// envelope the web form was built against.
type LegacyHandler struct {
	paths planGenerator
	log   *logger.Logger
}

func NewLegacyHandler(paths planGenerator, log *logger.Logger) *LegacyHandler {
	return &LegacyHandler{paths: paths, log: log}
}

func (h *LegacyHandler) GeneratePath(w http.ResponseWriter, r *http.Request) {
	var profile models.LearnerProfile
	if err := decodeJSON(w, r, &profile); err != nil {
		writeJSON(w, http.StatusBadRequest, models.LegacyResponse{
			Error:   "Dados inválidos",
			Details: []models.FieldError{{Field: "body", Message: "JSON inválido"}},
		})
		return
	}

	plan, err := h.paths.GenerateNow(r.Context(), profile)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, models.LegacyResponse{
				Error:   verr.Error(),
				Details: verr.Details,
			})
			return
		}

		msg := "Erro interno do servidor"
		var uerr *services.UpstreamError
		if errors.As(err, &uerr) {
			msg = uerr.Message
		}
		h.log.Error("generate-path failed", "error", err, "request_id", middleware.GetRequestID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, models.LegacyResponse{Error: msg})
		return
	}

	writeJSON(w, http.StatusOK, models.LegacyResponse{Success: true, Data: plan})
}
