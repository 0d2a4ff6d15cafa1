package service_test

import (
	"errors"
	"testing"

	"awardflow/internal/config"
	"awardflow/internal/email"
	"awardflow/internal/models"
	"awardflow/internal/repository"
	"awardflow/internal/service"
	"awardflow/internal/testutil"
)

type serviceHarness struct {
	containers   *testutil.TestContainers
	fixtures     *testutil.Fixtures
	applications *repository.ApplicationRepository
	review       *service.ReviewService
	withdrawal   *service.WithdrawalService
	finalization *service.FinalizationService
}

func setupServices(t *testing.T) *serviceHarness {
	t.Helper()

	containers := testutil.SetupTestContainers(t)
	t.Cleanup(func() { containers.Cleanup(t) })

	fixtures := testutil.SetupFixtures(t, containers.DB)

	applicationRepo := repository.NewApplicationRepository(containers.DB)
	graceMarkRepo := repository.NewGraceMarkRepository(containers.DB)
	priorityRepo := repository.NewPriorityRepository(containers.DB)
	withdrawalRepo := repository.NewWithdrawalRepository(containers.DB)
	userRepo := repository.NewUserRepository(containers.DB)
	auditRepo := repository.NewAuditRepository(containers.DB)

	auditService := service.NewAuditService(auditRepo)
	// Points at nothing; notification failures are logged, never returned
	emailService := email.NewService(&config.EmailConfig{SMTPHost: "127.0.0.1", SMTPPort: "1", SMTPFrom: "test@test.mil"})

	return &serviceHarness{
		containers:   containers,
		fixtures:     fixtures,
		applications: applicationRepo,
		review:       service.NewReviewService(applicationRepo, graceMarkRepo, priorityRepo, userRepo, emailService, auditService),
		withdrawal:   service.NewWithdrawalService(applicationRepo, withdrawalRepo, userRepo, emailService, auditService),
		finalization: service.NewFinalizationService(applicationRepo, userRepo, emailService, auditService),
	}
}

func TestReviewApprovalFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	h := setupServices(t)
	appID := h.fixtures.Application.ID
	userID := h.fixtures.BrigadeUser.ID

	// Approving before setting priority and grace marks must refuse
	// without mutating anything.
	err := h.review.Approve(appID, models.RoleBrigade, userID)
	if !errors.Is(err, service.ErrPriorityRequired) {
		t.Fatalf("Approve without priority: got %v, want ErrPriorityRequired", err)
	}

	if _, err := h.review.SetPriority(appID, models.RoleBrigade, 1, userID); err != nil {
		t.Fatalf("SetPriority: %v", err)
	}

	err = h.review.Approve(appID, models.RoleBrigade, userID)
	if !errors.Is(err, service.ErrGraceRequired) {
		t.Fatalf("Approve without grace marks: got %v, want ErrGraceRequired", err)
	}

	app, err := h.applications.GetByID(appID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if app.StatusFlag != models.StatusPending {
		t.Fatalf("refused approve mutated status to %s", app.StatusFlag)
	}

	if _, err := h.review.AddGraceMarks(appID, models.RoleBrigade, 5, userID); err != nil {
		t.Fatalf("AddGraceMarks: %v", err)
	}

	if err := h.review.Approve(appID, models.RoleBrigade, userID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	app, err = h.applications.GetByID(appID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if app.StatusFlag != models.StatusApproved {
		t.Errorf("StatusFlag = %s, want approved", app.StatusFlag)
	}
	if app.LastApprovedByRole == nil || *app.LastApprovedByRole != models.RoleBrigade {
		t.Errorf("LastApprovedByRole = %v, want brigade", app.LastApprovedByRole)
	}
}

func TestReviewGraceMarksLastWriteWins(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	h := setupServices(t)
	appID := h.fixtures.Application.ID
	userID := h.fixtures.BrigadeUser.ID

	if _, err := h.review.AddGraceMarks(appID, models.RoleBrigade, 5, userID); err != nil {
		t.Fatalf("AddGraceMarks: %v", err)
	}
	if _, err := h.review.AddGraceMarks(appID, models.RoleBrigade, 8, userID); err != nil {
		t.Fatalf("AddGraceMarks (rewrite): %v", err)
	}

	graceMarkRepo := repository.NewGraceMarkRepository(h.containers.DB)
	marks, err := graceMarkRepo.GetByApplication(appID)
	if err != nil {
		t.Fatalf("GetByApplication: %v", err)
	}
	if len(marks) != 1 {
		t.Fatalf("got %d grace mark rows, want 1", len(marks))
	}
	if marks[models.RoleBrigade].Marks != 8 {
		t.Errorf("Marks = %v, want 8 (last write wins)", marks[models.RoleBrigade].Marks)
	}
}

func TestReviewMissingApplication(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	h := setupServices(t)
	userID := h.fixtures.BrigadeUser.ID
	const missingID = uint(999999)

	if _, err := h.review.AddGraceMarks(missingID, models.RoleBrigade, 2, userID); !errors.Is(err, service.ErrApplicationNotFound) {
		t.Errorf("AddGraceMarks: got %v, want ErrApplicationNotFound", err)
	}
	if _, err := h.review.SetPriority(missingID, models.RoleBrigade, 1, userID); !errors.Is(err, service.ErrApplicationNotFound) {
		t.Errorf("SetPriority: got %v, want ErrApplicationNotFound", err)
	}
	if err := h.review.Shortlist(missingID, models.RoleCommand, userID); !errors.Is(err, service.ErrApplicationNotFound) {
		t.Errorf("Shortlist: got %v, want ErrApplicationNotFound", err)
	}
	if err := h.review.ApproveSideLane(missingID, models.RoleCW2MO, userID); !errors.Is(err, service.ErrApplicationNotFound) {
		t.Errorf("ApproveSideLane: got %v, want ErrApplicationNotFound", err)
	}
}

func TestWithdrawalLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	h := setupServices(t)
	appID := h.fixtures.Application.ID
	userID := h.fixtures.BrigadeUser.ID

	// Units may never request withdrawal
	err := h.withdrawal.Request(appID, models.RoleUnit, h.fixtures.UnitUser.ID)
	if !errors.Is(err, service.ErrUnitCannotWithdraw) {
		t.Fatalf("unit Request: got %v, want ErrUnitCannotWithdraw", err)
	}

	// Deciding with no request open
	err = h.withdrawal.Decide(appID, true, models.RoleCommand, userID)
	if !errors.Is(err, service.ErrNoWithdrawRequest) {
		t.Fatalf("Decide without request: got %v, want ErrNoWithdrawRequest", err)
	}

	// Any non-unit role may open a request, side lanes included
	if err := h.withdrawal.Request(appID, models.RoleCW2MO, userID); err != nil {
		t.Fatalf("Request: %v", err)
	}

	// A second request while one is pending is refused
	err = h.withdrawal.Request(appID, models.RoleDivision, userID)
	if !errors.Is(err, service.ErrWithdrawPending) {
		t.Fatalf("duplicate Request: got %v, want ErrWithdrawPending", err)
	}

	if err := h.withdrawal.Decide(appID, true, models.RoleCommand, userID); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	app, err := h.applications.GetByID(appID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if app.StatusFlag != models.StatusWithdrawed {
		t.Errorf("StatusFlag = %s, want withdrawed", app.StatusFlag)
	}

	// The decision is terminal
	err = h.withdrawal.Decide(appID, false, models.RoleCommand, userID)
	if !errors.Is(err, service.ErrWithdrawTerminal) {
		t.Fatalf("Decide after terminal: got %v, want ErrWithdrawTerminal", err)
	}
	err = h.withdrawal.Request(appID, models.RoleBrigade, userID)
	if !errors.Is(err, service.ErrWithdrawTerminal) {
		t.Fatalf("Request after terminal: got %v, want ErrWithdrawTerminal", err)
	}
}

func TestFinalizationEligibility(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	h := setupServices(t)
	appID := h.fixtures.Application.ID
	userID := h.fixtures.CommandUser.ID

	// Walk the application to command approval
	if _, err := h.review.SetPriority(appID, models.RoleCommand, 1, userID); err != nil {
		t.Fatalf("SetPriority: %v", err)
	}
	if _, err := h.review.AddGraceMarks(appID, models.RoleCommand, 3, userID); err != nil {
		t.Fatalf("AddGraceMarks: %v", err)
	}
	if err := h.review.Approve(appID, models.RoleCommand, userID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	// Missing MO/OL sign-offs keeps it out of the eligible set
	eligible, err := h.finalization.ListEligible()
	if err != nil {
		t.Fatalf("ListEligible: %v", err)
	}
	if len(eligible) != 0 {
		t.Fatalf("got %d eligible without MO/OL, want 0", len(eligible))
	}
	err = h.finalization.FinalizeBatch([]uint{appID}, userID)
	if !errors.Is(err, service.ErrNotFinalizable) {
		t.Fatalf("FinalizeBatch without MO/OL: got %v, want ErrNotFinalizable", err)
	}

	if err := h.review.ApproveSideLane(appID, models.RoleCW2MO, userID); err != nil {
		t.Fatalf("ApproveSideLane MO: %v", err)
	}
	if err := h.review.ApproveSideLane(appID, models.RoleCW2OL, userID); err != nil {
		t.Fatalf("ApproveSideLane OL: %v", err)
	}

	eligible, err = h.finalization.ListEligible()
	if err != nil {
		t.Fatalf("ListEligible: %v", err)
	}
	if len(eligible) != 1 || eligible[0].ID != appID {
		t.Fatalf("eligible = %v, want [%d]", eligible, appID)
	}

	// Repeated ids in a batch collapse to one finalization
	if err := h.finalization.FinalizeBatch([]uint{appID, appID}, userID); err != nil {
		t.Fatalf("FinalizeBatch: %v", err)
	}

	app, err := h.applications.GetByID(appID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !app.Finalization.IsFinalized || app.Finalization.FinalizedAt == nil {
		t.Errorf("application not finalized: %+v", app.Finalization)
	}

	// Finalizing again is refused
	err = h.finalization.FinalizeBatch([]uint{appID}, userID)
	if !errors.Is(err, service.ErrAlreadyFinalized) {
		t.Fatalf("second FinalizeBatch: got %v, want ErrAlreadyFinalized", err)
	}
}
