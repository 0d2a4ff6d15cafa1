package service

import (
	"fmt"
	"log/slog"
	"time"

	"awardflow/internal/email"
	"awardflow/internal/models"
	"awardflow/internal/pipeline"
	"awardflow/internal/repository"
)

// ReviewService handles the reviewer-side actions of the approval pipeline:
// grace marks, priorities, approvals, rejections and shortlisting.
type ReviewService struct {
	applicationRepo *repository.ApplicationRepository
	graceMarkRepo   *repository.GraceMarkRepository
	priorityRepo    *repository.PriorityRepository
	userRepo        *repository.UserRepository
	emailService    *email.Service
	auditService    *AuditService
}

// NewReviewService creates a new review service
func NewReviewService(
	applicationRepo *repository.ApplicationRepository,
	graceMarkRepo *repository.GraceMarkRepository,
	priorityRepo *repository.PriorityRepository,
	userRepo *repository.UserRepository,
	emailService *email.Service,
	auditService *AuditService,
) *ReviewService {
	return &ReviewService{
		applicationRepo: applicationRepo,
		graceMarkRepo:   graceMarkRepo,
		priorityRepo:    priorityRepo,
		userRepo:        userRepo,
		emailService:    emailService,
		auditService:    auditService,
	}
}

var hierarchyRoles = map[models.Role]bool{
	models.RoleBrigade:  true,
	models.RoleDivision: true,
	models.RoleCorps:    true,
	models.RoleCommand:  true,
}

// AddGraceMarks records the acting role's grace marks on an application.
// Writing again replaces the previous value (last write wins).
func (s *ReviewService) AddGraceMarks(applicationID uint, role models.Role, marks float64, userID uint) (*models.GraceMark, error) {
	if !hierarchyRoles[role] {
		return nil, ErrInvalidRole
	}
	if err := s.mustExist(applicationID); err != nil {
		return nil, err
	}

	gm := &models.GraceMark{
		ApplicationID: applicationID,
		Role:          role,
		Marks:         marks,
		AddedBy:       userID,
	}
	if err := s.graceMarkRepo.Upsert(gm); err != nil {
		return nil, fmt.Errorf("failed to save grace marks: %w", err)
	}

	s.auditService.Log(userID, "review.grace_marks", fmt.Sprintf("application/%d", applicationID),
		fmt.Sprintf("role=%s marks=%.2f", role, marks))
	return gm, nil
}

// SetPriority records the acting role's priority ranking on an application
func (s *ReviewService) SetPriority(applicationID uint, role models.Role, priority int, userID uint) (*models.Priority, error) {
	if !hierarchyRoles[role] {
		return nil, ErrInvalidRole
	}
	if err := s.mustExist(applicationID); err != nil {
		return nil, err
	}

	p := &models.Priority{
		ApplicationID: applicationID,
		Role:          role,
		Priority:      priority,
	}
	if err := s.priorityRepo.Upsert(p); err != nil {
		return nil, fmt.Errorf("failed to save priority: %w", err)
	}

	s.auditService.Log(userID, "review.priority", fmt.Sprintf("application/%d", applicationID),
		fmt.Sprintf("role=%s priority=%d", role, priority))
	return p, nil
}

// Approve records a hierarchy-level approval. The acting role must already
// have set both its priority and its grace marks; refusals mutate nothing.
func (s *ReviewService) Approve(applicationID uint, role models.Role, userID uint) error {
	if !hierarchyRoles[role] {
		return ErrInvalidRole
	}

	app, err := s.loadForDecision(applicationID)
	if err != nil {
		return err
	}

	if decision := pipeline.CanApprove(*app, role); !decision.Allowed {
		if _, ok := pipeline.PriorityFor(*app, role); !ok {
			return ErrPriorityRequired
		}
		return ErrGraceRequired
	}

	if err := s.applicationRepo.SetApproved(applicationID, role, models.StatusApproved); err != nil {
		return fmt.Errorf("failed to record approval: %w", err)
	}

	s.auditService.Log(userID, "review.approve", fmt.Sprintf("application/%d", applicationID),
		fmt.Sprintf("role=%s", role))
	s.notifyUnit(app, func(to string) error {
		return s.emailService.SendStageAdvancedNotification(to, app.ID, app.Type, role)
	})
	return nil
}

// Reject records a hierarchy-level rejection
func (s *ReviewService) Reject(applicationID uint, role models.Role, userID uint) error {
	if !hierarchyRoles[role] {
		return ErrInvalidRole
	}

	app, err := s.loadForDecision(applicationID)
	if err != nil {
		return err
	}

	if err := s.applicationRepo.SetRejected(applicationID, role); err != nil {
		return fmt.Errorf("failed to record rejection: %w", err)
	}

	s.auditService.Log(userID, "review.reject", fmt.Sprintf("application/%d", applicationID),
		fmt.Sprintf("role=%s", role))
	s.notifyUnit(app, func(to string) error {
		return s.emailService.SendRejectionNotification(to, app.ID, app.Type, role)
	})
	return nil
}

// Shortlist records a shortlist approval
func (s *ReviewService) Shortlist(applicationID uint, role models.Role, userID uint) error {
	if !hierarchyRoles[role] {
		return ErrInvalidRole
	}
	if err := s.mustExist(applicationID); err != nil {
		return err
	}

	if err := s.applicationRepo.SetShortlisted(applicationID, role); err != nil {
		return fmt.Errorf("failed to record shortlist approval: %w", err)
	}

	s.auditService.Log(userID, "review.shortlist", fmt.Sprintf("application/%d", applicationID),
		fmt.Sprintf("role=%s", role))
	return nil
}

// ApproveSideLane records a Medical Officer or Operational Leader sign-off
func (s *ReviewService) ApproveSideLane(applicationID uint, lane models.Role, userID uint) error {
	if err := s.mustExist(applicationID); err != nil {
		return err
	}

	now := time.Now()
	switch lane {
	case models.RoleCW2MO:
		if err := s.applicationRepo.SetMoApproved(applicationID, now); err != nil {
			return fmt.Errorf("failed to record MO approval: %w", err)
		}
	case models.RoleCW2OL:
		if err := s.applicationRepo.SetOlApproved(applicationID, now); err != nil {
			return fmt.Errorf("failed to record OL approval: %w", err)
		}
	default:
		return ErrInvalidRole
	}

	s.auditService.Log(userID, "review.side_lane", fmt.Sprintf("application/%d", applicationID),
		fmt.Sprintf("lane=%s", lane))
	return nil
}

// BulkApprove approves applications in per-type groups. Each group is one
// approval unit: a failure is reported for that group only, and groups that
// already succeeded are not retried or rolled back.
func (s *ReviewService) BulkApprove(applicationIDs []uint, role models.Role, userID uint) ([]models.BulkApproveResult, error) {
	if !hierarchyRoles[role] {
		return nil, ErrInvalidRole
	}

	apps, err := s.applicationRepo.ListByIDs(applicationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}

	groups := pipeline.GroupByType(apps)
	results := make([]models.BulkApproveResult, 0, len(groups))
	for appType, ids := range groups {
		result := models.BulkApproveResult{Type: appType, ApplicationIDs: ids, Succeeded: true}
		for _, id := range ids {
			if err := s.Approve(id, role, userID); err != nil {
				result.Succeeded = false
				result.Error = err.Error()
				break
			}
		}
		results = append(results, result)
	}

	return results, nil
}

// mustExist verifies the application is present before a lane write
func (s *ReviewService) mustExist(applicationID uint) error {
	app, err := s.applicationRepo.GetByID(applicationID)
	if err != nil {
		return fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return ErrApplicationNotFound
	}
	return nil
}

// loadForDecision fetches an application with the lane data a gate needs
func (s *ReviewService) loadForDecision(applicationID uint) (*models.Application, error) {
	app, err := s.applicationRepo.GetByID(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	grace, err := s.graceMarkRepo.GetByApplication(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load grace marks: %w", err)
	}
	app.GraceMarks = grace

	priorities, err := s.priorityRepo.GetByApplication(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load priorities: %w", err)
	}
	app.Priorities = priorities

	return app, nil
}

// notifyUnit sends a notification to the active users of the submitting unit.
// Email failures are logged and never fail the decision.
func (s *ReviewService) notifyUnit(app *models.Application, send func(to string) error) {
	users, err := s.userRepo.ListByRole(models.RoleUnit)
	if err != nil {
		slog.Error("Failed to load unit users for notification", "application_id", app.ID, "error", err)
		return
	}
	for _, u := range users {
		if u.UnitID == nil || *u.UnitID != app.UnitID {
			continue
		}
		if err := send(u.Email); err != nil {
			slog.Error("Failed to send notification email", "to", u.Email, "application_id", app.ID, "error", err)
		}
	}
}
