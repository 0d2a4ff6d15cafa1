package service

import (
	"awardflow/internal/models"
	"awardflow/internal/repository"
)

// AuditService handles audit logging
type AuditService struct {
	auditRepo *repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo *repository.AuditRepository) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
	}
}

// Log creates an audit log entry, ignoring errors.
// Audit failures never fail the action being audited.
func (s *AuditService) Log(userID uint, action, resource, details string) {
	_ = s.auditRepo.Create(&models.AuditLog{
		UserID:   &userID,
		Action:   action,
		Resource: resource,
		Details:  details,
	})
}

// List retrieves audit log entries, newest first
func (s *AuditService) List(limit, offset int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.auditRepo.List(limit, offset)
}
