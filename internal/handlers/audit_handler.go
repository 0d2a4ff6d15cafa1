package handlers

import (
	"net/http"
	"strconv"

	"awardflow/internal/service"
)

// AuditHandler handles audit log requests
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// List lists audit log entries with pagination
// @Summary List audit logs
// @Description Get a paginated list of audit log entries, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Items per page" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.AuditLog
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /audit-logs [get]
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 100
	offset := 0

	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			limit = v
		}
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			offset = v
		}
	}

	logs, err := h.auditService.List(limit, offset)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, logs)
}
