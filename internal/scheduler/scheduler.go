package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"awardflow/internal/config"
	"awardflow/internal/email"
	"awardflow/internal/models"
	"awardflow/internal/repository"
	"awardflow/internal/service"
)

// Scheduler runs the periodic maintenance jobs: the submission deadline sweep
// and the pending-withdrawal reminder.
type Scheduler struct {
	cron            *cron.Cron
	config          *config.SchedulerConfig
	applicationRepo *repository.ApplicationRepository
	sessionRepo     *repository.SessionRepository
	userRepo        *repository.UserRepository
	withdrawalSvc   *service.WithdrawalService
	emailService    *email.Service
}

// New creates a scheduler with all jobs registered but not yet running
func New(
	cfg *config.SchedulerConfig,
	applicationRepo *repository.ApplicationRepository,
	sessionRepo *repository.SessionRepository,
	userRepo *repository.UserRepository,
	withdrawalSvc *service.WithdrawalService,
	emailService *email.Service,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:            cron.New(),
		config:          cfg,
		applicationRepo: applicationRepo,
		sessionRepo:     sessionRepo,
		userRepo:        userRepo,
		withdrawalSvc:   withdrawalSvc,
		emailService:    emailService,
	}

	if cfg.EnableDeadlineSweep {
		if _, err := s.cron.AddFunc(cfg.DeadlineSweepCron, s.runDeadlineSweep); err != nil {
			return nil, fmt.Errorf("invalid deadline sweep schedule: %w", err)
		}
	}
	if cfg.EnableWithdrawalReminder {
		if _, err := s.cron.AddFunc(cfg.WithdrawalReminderCron, s.runWithdrawalReminder); err != nil {
			return nil, fmt.Errorf("invalid withdrawal reminder schedule: %w", err)
		}
	}
	// Session cleanup runs hourly, independent of the configurable jobs
	if _, err := s.cron.AddFunc("0 * * * *", s.runSessionCleanup); err != nil {
		return nil, fmt.Errorf("invalid session cleanup schedule: %w", err)
	}

	return s, nil
}

// Start begins running the scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Scheduler started",
		"deadline_sweep", s.config.EnableDeadlineSweep,
		"withdrawal_reminder", s.config.EnableWithdrawalReminder,
	)
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

// runDeadlineSweep withdraws pending applications whose deadline has passed
func (s *Scheduler) runDeadlineSweep() {
	affected, err := s.applicationRepo.ExpireOverdue(time.Now())
	if err != nil {
		slog.Error("Deadline sweep failed", "error", err)
		return
	}
	if affected > 0 {
		slog.Info("Deadline sweep completed", "expired", affected)
	}
}

// runWithdrawalReminder mails command-level reviewers about undecided requests
func (s *Scheduler) runWithdrawalReminder() {
	pending, err := s.withdrawalSvc.ListPending()
	if err != nil {
		slog.Error("Withdrawal reminder failed", "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	reviewers, err := s.userRepo.ListByRole(models.RoleCommand)
	if err != nil {
		slog.Error("Withdrawal reminder failed to list reviewers", "error", err)
		return
	}
	for _, reviewer := range reviewers {
		if err := s.emailService.SendWithdrawalReminder(reviewer.Email, pending); err != nil {
			slog.Error("Failed to send withdrawal reminder", "to", reviewer.Email, "error", err)
		}
	}
}

// runSessionCleanup purges expired token sessions
func (s *Scheduler) runSessionCleanup() {
	deleted, err := s.sessionRepo.DeleteExpired(time.Now())
	if err != nil {
		slog.Error("Session cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("Session cleanup completed", "deleted", deleted)
	}
}
