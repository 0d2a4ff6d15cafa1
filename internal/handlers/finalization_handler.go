package handlers

import (
	"encoding/json"
	"net/http"

	"awardflow/internal/service"
)

// FinalizationHandler handles the CW2 finalization stage
type FinalizationHandler struct {
	finalizationService *service.FinalizationService
}

// NewFinalizationHandler creates a new finalization handler
func NewFinalizationHandler(finalizationService *service.FinalizationService) *FinalizationHandler {
	return &FinalizationHandler{
		finalizationService: finalizationService,
	}
}

// ListEligible lists applications eligible for finalization
// @Summary List finalizable applications
// @Description Applications with command approval plus both MO and OL sign-offs, not yet finalized
// @Tags Finalization
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Application
// @Router /finalization/eligible [get]
func (h *FinalizationHandler) ListEligible(w http.ResponseWriter, r *http.Request) {
	apps, err := h.finalizationService.ListEligible()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, apps)
}

// FinalizeBatchRequest is the payload for a finalization batch
type FinalizeBatchRequest struct {
	ApplicationIDs []uint `json:"application_ids"`
}

// FinalizeBatch finalizes a batch of eligible applications
// @Summary Finalize batch
// @Description Finalize the given applications. An ineligible id refuses the whole batch.
// @Tags Finalization
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FinalizeBatchRequest true "Application IDs"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string "Application not eligible"
// @Router /finalization/batch [post]
func (h *FinalizationHandler) FinalizeBatch(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := actor(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	var req FinalizeBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	if err := h.finalizationService.FinalizeBatch(req.ApplicationIDs, userID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Applications finalized"})
}
