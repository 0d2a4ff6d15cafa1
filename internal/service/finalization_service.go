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

// FinalizationService handles the terminal CW2-stage batch
type FinalizationService struct {
	applicationRepo *repository.ApplicationRepository
	userRepo        *repository.UserRepository
	emailService    *email.Service
	auditService    *AuditService
}

// NewFinalizationService creates a new finalization service
func NewFinalizationService(
	applicationRepo *repository.ApplicationRepository,
	userRepo *repository.UserRepository,
	emailService *email.Service,
	auditService *AuditService,
) *FinalizationService {
	return &FinalizationService{
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		emailService:    emailService,
		auditService:    auditService,
	}
}

// ListEligible retrieves the applications currently eligible for finalization:
// command approval plus both MO and OL sign-offs, not yet finalized.
func (s *FinalizationService) ListEligible() ([]models.Application, error) {
	apps, err := s.applicationRepo.ListFinalizable()
	if err != nil {
		return nil, fmt.Errorf("failed to list finalizable applications: %w", err)
	}

	// The query already filters; the gate re-checks so a stale read can
	// never finalize an ineligible application.
	eligible := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if pipeline.CanFinalize(app) {
			eligible = append(eligible, app)
		}
	}
	return eligible, nil
}

// FinalizeBatch finalizes the given applications. Every id must be eligible;
// an ineligible id refuses the whole batch before any state is mutated.
func (s *FinalizationService) FinalizeBatch(applicationIDs []uint, userID uint) error {
	if len(applicationIDs) == 0 {
		return nil
	}

	seen := make(map[uint]bool, len(applicationIDs))
	ids := make([]uint, 0, len(applicationIDs))
	for _, id := range applicationIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	apps, err := s.applicationRepo.ListByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to load applications: %w", err)
	}
	if len(apps) != len(ids) {
		return ErrApplicationNotFound
	}

	for _, app := range apps {
		if app.Finalization.IsFinalized {
			return fmt.Errorf("%w: application %d", ErrAlreadyFinalized, app.ID)
		}
		if !pipeline.CanFinalize(app) {
			return fmt.Errorf("%w: application %d", ErrNotFinalizable, app.ID)
		}
	}

	now := time.Now()
	if err := s.applicationRepo.SetFinalized(ids, now); err != nil {
		return fmt.Errorf("failed to finalize applications: %w", err)
	}

	s.auditService.Log(userID, "finalization.batch", "applications",
		fmt.Sprintf("count=%d", len(ids)))

	for _, app := range apps {
		s.notifyUnit(app)
	}
	return nil
}

func (s *FinalizationService) notifyUnit(app models.Application) {
	users, err := s.userRepo.ListByRole(models.RoleUnit)
	if err != nil {
		slog.Error("Failed to load unit users for notification", "application_id", app.ID, "error", err)
		return
	}
	for _, u := range users {
		if u.UnitID == nil || *u.UnitID != app.UnitID {
			continue
		}
		if err := s.emailService.SendFinalizedNotification(u.Email, app.ID, app.Type); err != nil {
			slog.Error("Failed to send finalization notification", "to", u.Email, "application_id", app.ID, "error", err)
		}
	}
}
