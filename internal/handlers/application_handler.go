package handlers

import (
	"encoding/json"
	"net/http"

	"awardflow/internal/middleware"
	"awardflow/internal/models"
	"awardflow/internal/service"
)

// ApplicationHandler handles award application requests
type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// Submit creates a new application
// @Summary Submit application
// @Description Submit a citation or appreciation application with its parameter set
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.SubmitRequest true "Application"
// @Success 201 {object} models.Application
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /applications [post]
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUserIDNotFound)
		return
	}

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	app, err := h.applicationService.Submit(req, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, app)
}

// Get retrieves one application with totals and stage progression
// @Summary Get application
// @Description Get an application with computed totals and approval stage view
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} service.ApplicationView
// @Failure 404 {object} map[string]string "Not found"
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, role, ok := actor(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidApplicationID)
		return
	}

	view, err := h.applicationService.Get(id, role)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// List retrieves the applications visible to the caller
// @Summary List applications
// @Description Units see their own submissions, reviewer roles see all
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ApplicationView
// @Router /applications [get]
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}
	_ = userID

	var unitID *uint
	if role == models.RoleUnit {
		unitID = unitIDFromQuery(r)
	}

	views, err := h.applicationService.List(role, unitID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, views)
}

// ListShortlisted retrieves shortlisted applications in the caller's priority order
// @Summary List shortlisted applications
// @Description Shortlisted applications ordered by the caller's priority values
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ApplicationView
// @Router /applications/shortlisted [get]
func (h *ApplicationHandler) ListShortlisted(w http.ResponseWriter, r *http.Request) {
	_, role, ok := actor(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	views, err := h.applicationService.ListShortlisted(role)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, views)
}

// SetApprovedMarksRequest is the payload for a marks override
type SetApprovedMarksRequest struct {
	Marks float64 `json:"marks"`
}

// SetApprovedMarks overrides a parameter's marks
// @Summary Override parameter marks
// @Description Record reviewer-approved marks on a parameter
// @Tags Parameters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parameter ID"
// @Param request body SetApprovedMarksRequest true "Approved marks"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Parameter not found"
// @Router /parameters/{id}/approved-marks [put]
func (h *ApplicationHandler) SetApprovedMarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUserIDNotFound)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidParameterID)
		return
	}

	var req SetApprovedMarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	if err := h.applicationService.SetApprovedMarks(id, req.Marks, userID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Approved marks recorded"})
}

// ClarificationRequest is the payload for raising a clarification
type ClarificationRequest struct {
	Message string `json:"message"`
}

// RaiseClarification opens a clarification thread on a parameter
// @Summary Raise clarification
// @Description Open a clarification thread on a parameter
// @Tags Parameters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parameter ID"
// @Param request body ClarificationRequest true "Clarification message"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Parameter not found"
// @Router /parameters/{id}/clarification [post]
func (h *ApplicationHandler) RaiseClarification(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := actor(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidParameterID)
		return
	}

	var req ClarificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	if err := h.applicationService.RaiseClarification(id, role, req.Message, userID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Clarification raised"})
}

// ResolveClarificationRequest is the payload for resolving a clarification
type ResolveClarificationRequest struct {
	Status   models.ClarificationStatus `json:"status"`
	Response string                     `json:"response"`
}

// ResolveClarification closes a clarification thread
// @Summary Resolve clarification
// @Description Resolve a clarification as clarified or rejected. A rejected parameter is excluded from all totals.
// @Tags Parameters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parameter ID"
// @Param request body ResolveClarificationRequest true "Resolution"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string "No clarification raised"
// @Router /parameters/{id}/clarification [put]
func (h *ApplicationHandler) ResolveClarification(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUserIDNotFound)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidParameterID)
		return
	}

	var req ResolveClarificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	if err := h.applicationService.ResolveClarification(id, req.Status, req.Response, userID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Clarification resolved"})
}

// UploadRequest is the payload for attaching a supporting document reference
type UploadRequest struct {
	FileName string `json:"file_name"`
}

// AttachUpload records a supporting document on a parameter
// @Summary Attach upload
// @Description Record a supporting document reference on a parameter
// @Tags Parameters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parameter ID"
// @Param request body UploadRequest true "File name"
// @Success 201 {object} models.UploadRef
// @Failure 404 {object} map[string]string "Parameter not found"
// @Router /parameters/{id}/uploads [post]
func (h *ApplicationHandler) AttachUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUserIDNotFound)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidParameterID)
		return
	}

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FileName == "" {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	upload, err := h.applicationService.AttachUpload(id, req.FileName, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, upload)
}

// unitIDFromQuery parses an optional unit_id query parameter
func unitIDFromQuery(r *http.Request) *uint {
	if s := r.URL.Query().Get("unit_id"); s != "" {
		if id, err := parseUint(s); err == nil {
			return &id
		}
	}
	return nil
}
