package handlers

import (
	"encoding/json"
	"net/http"

	"awardflow/internal/service"
)

// ReviewHandler handles reviewer actions on applications
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// GraceMarksRequest is the payload for setting grace marks
type GraceMarksRequest struct {
	Marks float64 `json:"marks"`
}

// AddGraceMarks records the caller's grace marks on an application
// @Summary Add grace marks
// @Description Record the acting role's grace marks. Writing again replaces the previous value.
// @Tags Review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body GraceMarksRequest true "Grace marks"
// @Success 200 {object} models.GraceMark
// @Failure 404 {object} map[string]string "Application not found"
// @Router /applications/{id}/grace-marks [put]
func (h *ReviewHandler) AddGraceMarks(w http.ResponseWriter, r *http.Request) {
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

	var req GraceMarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	gm, err := h.reviewService.AddGraceMarks(id, role, req.Marks, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, gm)
}

// PriorityRequest is the payload for setting a priority
type PriorityRequest struct {
	Priority int `json:"priority"`
}

// SetPriority records the caller's priority ranking on an application
// @Summary Set priority
// @Description Record the acting role's priority ranking for shortlist ordering
// @Tags Review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body PriorityRequest true "Priority"
// @Success 200 {object} models.Priority
// @Failure 404 {object} map[string]string "Application not found"
// @Router /applications/{id}/priority [put]
func (h *ReviewHandler) SetPriority(w http.ResponseWriter, r *http.Request) {
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

	var req PriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	p, err := h.reviewService.SetPriority(id, role, req.Priority, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

// Approve records a hierarchy-level approval
// @Summary Approve application
// @Description Approve at the caller's hierarchy level. Requires prior priority and grace marks.
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string "Priority or grace marks missing"
// @Router /applications/{id}/approve [post]
func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
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

	if err := h.reviewService.Approve(id, role, userID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Application approved"})
}

// Reject records a hierarchy-level rejection
// @Summary Reject application
// @Description Reject at the caller's hierarchy level
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Application not found"
// @Router /applications/{id}/reject [post]
func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
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

	if err := h.reviewService.Reject(id, role, userID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Application rejected"})
}

// Shortlist records a shortlist approval
// @Summary Shortlist application
// @Description Mark an application as shortlist-approved at the caller's level
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]string
// @Router /applications/{id}/shortlist [post]
func (h *ReviewHandler) Shortlist(w http.ResponseWriter, r *http.Request) {
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

	if err := h.reviewService.Shortlist(id, role, userID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Application shortlisted"})
}

// ApproveSideLane records an MO or OL sign-off
// @Summary Side-lane approval
// @Description Record the caller's Medical Officer or Operational Leader sign-off
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]string
// @Router /applications/{id}/side-lane/approve [post]
func (h *ReviewHandler) ApproveSideLane(w http.ResponseWriter, r *http.Request) {
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

	if err := h.reviewService.ApproveSideLane(id, role, userID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Side-lane approval recorded"})
}

// BulkApproveRequest is the payload for a bulk approval
type BulkApproveRequest struct {
	ApplicationIDs []uint `json:"application_ids"`
}

// BulkApprove approves applications in per-type groups
// @Summary Bulk approve
// @Description Approve applications grouped per type. Failures are reported per group; succeeded groups are not rolled back.
// @Tags Review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkApproveRequest true "Application IDs"
// @Success 200 {array} models.BulkApproveResult
// @Router /applications/bulk-approve [post]
func (h *ReviewHandler) BulkApprove(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	var req BulkApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if len(req.ApplicationIDs) == 0 {
		respondWithError(w, http.StatusBadRequest, "No application IDs given")
		return
	}

	results, err := h.reviewService.BulkApprove(req.ApplicationIDs, role, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, results)
}
