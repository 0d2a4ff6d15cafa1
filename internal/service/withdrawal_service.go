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

// WithdrawalService handles the withdrawal request lane
type WithdrawalService struct {
	applicationRepo *repository.ApplicationRepository
	withdrawalRepo  *repository.WithdrawalRepository
	userRepo        *repository.UserRepository
	emailService    *email.Service
	auditService    *AuditService
}

// NewWithdrawalService creates a new withdrawal service
func NewWithdrawalService(
	applicationRepo *repository.ApplicationRepository,
	withdrawalRepo *repository.WithdrawalRepository,
	userRepo *repository.UserRepository,
	emailService *email.Service,
	auditService *AuditService,
) *WithdrawalService {
	return &WithdrawalService{
		applicationRepo: applicationRepo,
		withdrawalRepo:  withdrawalRepo,
		userRepo:        userRepo,
		emailService:    emailService,
		auditService:    auditService,
	}
}

// Request opens a withdrawal request on an application. Units cannot request,
// rejected applications cannot be withdrawn, and a decided withdrawal is final.
func (s *WithdrawalService) Request(applicationID uint, role models.Role, userID uint) error {
	app, err := s.load(applicationID)
	if err != nil {
		return err
	}

	if decision := pipeline.CanRequestWithdrawal(*app, role); !decision.Allowed {
		return s.requestRefusal(*app, role)
	}

	if err := s.withdrawalRepo.CreateRequest(applicationID, role, time.Now()); err != nil {
		return fmt.Errorf("failed to create withdrawal request: %w", err)
	}

	s.auditService.Log(userID, "withdrawal.request", fmt.Sprintf("application/%d", applicationID),
		fmt.Sprintf("role=%s", role))
	return nil
}

// Decide resolves a pending withdrawal request. Approval also flips the
// application's status flag to withdrawn; both outcomes are terminal.
func (s *WithdrawalService) Decide(applicationID uint, approve bool, role models.Role, userID uint) error {
	app, err := s.load(applicationID)
	if err != nil {
		return err
	}

	if decision := pipeline.CanDecideWithdrawal(*app); !decision.Allowed {
		if pipeline.WithdrawalState(*app) == pipeline.WithdrawalNone {
			return ErrNoWithdrawRequest
		}
		return ErrWithdrawTerminal
	}

	status := models.WithdrawRejected
	if approve {
		status = models.WithdrawApproved
	}

	if err := s.withdrawalRepo.Decide(applicationID, status, role, time.Now()); err != nil {
		return fmt.Errorf("failed to decide withdrawal: %w", err)
	}

	if approve {
		if err := s.applicationRepo.SetStatus(applicationID, models.StatusWithdrawed); err != nil {
			return fmt.Errorf("failed to mark application withdrawn: %w", err)
		}
	}

	s.auditService.Log(userID, "withdrawal.decide", fmt.Sprintf("application/%d", applicationID),
		fmt.Sprintf("role=%s status=%s", role, status))
	s.notifyUnit(app, status)
	return nil
}

// ListPending retrieves the application ids with an undecided withdrawal request
func (s *WithdrawalService) ListPending() ([]uint, error) {
	return s.withdrawalRepo.ListPending()
}

func (s *WithdrawalService) load(applicationID uint) (*models.Application, error) {
	app, err := s.applicationRepo.GetByID(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	withdrawal, err := s.withdrawalRepo.GetByApplication(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load withdrawal: %w", err)
	}
	app.Withdrawal = withdrawal

	return app, nil
}

// requestRefusal maps a refused withdrawal request to its sentinel error
func (s *WithdrawalService) requestRefusal(app models.Application, role models.Role) error {
	if role == models.RoleUnit {
		return ErrUnitCannotWithdraw
	}
	if app.StatusFlag == models.StatusRejected {
		return ErrWithdrawRejected
	}
	if pipeline.WithdrawalState(app) == pipeline.WithdrawalPending {
		return ErrWithdrawPending
	}
	return ErrWithdrawTerminal
}

func (s *WithdrawalService) notifyUnit(app *models.Application, status models.WithdrawStatus) {
	users, err := s.userRepo.ListByRole(models.RoleUnit)
	if err != nil {
		slog.Error("Failed to load unit users for notification", "application_id", app.ID, "error", err)
		return
	}
	for _, u := range users {
		if u.UnitID == nil || *u.UnitID != app.UnitID {
			continue
		}
		if err := s.emailService.SendWithdrawalDecisionNotification(u.Email, app.ID, status); err != nil {
			slog.Error("Failed to send withdrawal notification", "to", u.Email, "application_id", app.ID, "error", err)
		}
	}
}
