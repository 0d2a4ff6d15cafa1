package handlers

import (
	"encoding/json"
	"net/http"

	"awardflow/internal/service"
)

// WithdrawalHandler handles withdrawal requests and decisions
type WithdrawalHandler struct {
	withdrawalService *service.WithdrawalService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalService *service.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// Request opens a withdrawal request on an application
// @Summary Request withdrawal
// @Description Open a withdrawal request. Units cannot request; rejected applications cannot be withdrawn.
// @Tags Withdrawal
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string "Units cannot request withdrawal"
// @Failure 409 {object} map[string]string "Request already pending or decided"
// @Router /applications/{id}/withdrawal [post]
func (h *WithdrawalHandler) Request(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidApplicationID)
		return
	}

	if err := h.withdrawalService.Request(id, role, userID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Withdrawal requested"})
}

// DecideRequest is the payload for a withdrawal decision
type DecideRequest struct {
	Approve bool `json:"approve"`
}

// Decide resolves a pending withdrawal request
// @Summary Decide withdrawal
// @Description Approve or reject a pending withdrawal request. Both outcomes are terminal.
// @Tags Withdrawal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body DecideRequest true "Decision"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string "No pending request or already decided"
// @Router /applications/{id}/withdrawal/decision [post]
func (h *WithdrawalHandler) Decide(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidApplicationID)
		return
	}

	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	if err := h.withdrawalService.Decide(id, req.Approve, role, userID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Withdrawal decided"})
}

// ListPending lists application ids with an undecided withdrawal request
// @Summary List pending withdrawals
// @Description Application IDs with a withdrawal request awaiting decision
// @Tags Withdrawal
// @Produce json
// @Security BearerAuth
// @Success 200 {array} int
// @Router /withdrawals/pending [get]
func (h *WithdrawalHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	ids, err := h.withdrawalService.ListPending()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ids)
}
