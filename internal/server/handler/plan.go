package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/usecase"
	"github.com/dogcafe6ix/dogcafe-api/shared/payload"
)

// PlanHandler serves the public visit plan endpoints.
type PlanHandler struct {
	planUsecase usecase.PlanUsecase
	logger      *zerolog.Logger
}

// NewPlanHandler creates a new PlanHandler instance.
func NewPlanHandler(planUsecase usecase.PlanUsecase, logger *zerolog.Logger) *PlanHandler {
	return &PlanHandler{
		planUsecase: planUsecase,
		logger:      logger,
	}
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planUsecase.ListPlans(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list plans")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewPlanResponses(plans))
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "plan not found")
		return
	}

	plan, err := h.planUsecase.GetPlan(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPlanNotFound) {
			respondError(w, http.StatusNotFound, "plan not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to get plan")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewPlanResponse(plan))
}
