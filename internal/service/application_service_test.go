package service_test

import (
	"testing"

	"awardflow/internal/models"
	"awardflow/internal/repository"
	"awardflow/internal/service"
	"awardflow/internal/testutil"
)

func setupApplicationService(t *testing.T) (*service.ApplicationService, *testutil.Fixtures) {
	t.Helper()

	containers := testutil.SetupTestContainers(t)
	t.Cleanup(func() { containers.Cleanup(t) })

	fixtures := testutil.SetupFixtures(t, containers.DB)

	svc := service.NewApplicationService(
		repository.NewApplicationRepository(containers.DB),
		repository.NewParameterRepository(containers.DB),
		repository.NewGraceMarkRepository(containers.DB),
		repository.NewPriorityRepository(containers.DB),
		repository.NewWithdrawalRepository(containers.DB),
		service.NewAuditService(repository.NewAuditRepository(containers.DB)),
	)
	return svc, fixtures
}

func TestSubmitAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	svc, fixtures := setupApplicationService(t)

	app, err := svc.Submit(service.SubmitRequest{
		Type:   models.TypeAppreciation,
		UnitID: 1,
		Parameters: []models.Parameter{
			{Name: "Operations conducted", Count: 2, Marks: 10},
			{Name: "Disciplinary cases", Count: 1, Marks: 5, Negative: true},
			{Name: ""},
		},
	}, fixtures.UnitUser.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	view, err := svc.Get(app.ID, models.RoleUnit)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if len(view.Parameters) != 3 {
		t.Fatalf("got %d parameters, want 3", len(view.Parameters))
	}
	if view.Stats.TotalParams != 3 || view.Stats.FilledParams != 2 {
		t.Errorf("Stats counts = %+v, want TotalParams=3 FilledParams=2", view.Stats)
	}
	if view.Stats.Marks != 10 || view.Stats.NegativeMarks != 5 || view.Stats.TotalMarks != 5 {
		t.Errorf("Stats totals = %+v, want Marks=10 NegativeMarks=5 TotalMarks=5", view.Stats)
	}

	// Units see the four-step command-mode stage view
	if len(view.Stage.Steps) != 4 {
		t.Errorf("unit stage has %d steps, want 4", len(view.Stage.Steps))
	}
	reviewerView, err := svc.Get(app.ID, models.RoleBrigade)
	if err != nil {
		t.Fatalf("Get (reviewer): %v", err)
	}
	if len(reviewerView.Stage.Steps) != 7 {
		t.Errorf("reviewer stage has %d steps, want 7", len(reviewerView.Stage.Steps))
	}
}

func TestRejectedClarificationExcludedFromTotals(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	svc, fixtures := setupApplicationService(t)

	app, err := svc.Submit(service.SubmitRequest{
		Type:   models.TypeCitation,
		UnitID: 1,
		Parameters: []models.Parameter{
			{Name: "Operations conducted", Count: 1, Marks: 10},
			{Name: "Disputed entry", Count: 1, Marks: 20},
		},
	}, fixtures.UnitUser.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	view, err := svc.Get(app.ID, models.RoleBrigade)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	disputed := view.Parameters[1]

	if err := svc.RaiseClarification(disputed.ID, models.RoleBrigade, "evidence missing", fixtures.BrigadeUser.ID); err != nil {
		t.Fatalf("RaiseClarification: %v", err)
	}
	if err := svc.ResolveClarification(disputed.ID, models.ClarificationRejected, "not substantiated", fixtures.BrigadeUser.ID); err != nil {
		t.Fatalf("ResolveClarification: %v", err)
	}

	view, err = svc.Get(app.ID, models.RoleBrigade)
	if err != nil {
		t.Fatalf("Get after rejection: %v", err)
	}
	if view.Stats.Marks != 10 || view.Stats.TotalMarks != 10 {
		t.Errorf("rejected parameter still counted: %+v", view.Stats)
	}
	if view.Parameters[1].Clarification == nil ||
		view.Parameters[1].Clarification.Status != models.ClarificationRejected {
		t.Errorf("clarification not persisted: %+v", view.Parameters[1].Clarification)
	}
}

func TestSetApprovedMarksOverride(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	svc, fixtures := setupApplicationService(t)

	app, err := svc.Submit(service.SubmitRequest{
		Type:   models.TypeCitation,
		UnitID: 1,
		Parameters: []models.Parameter{
			{Name: "Disciplinary cases", Count: 1, Marks: 5, Negative: true},
			{Name: "Operations conducted", Count: 1, Marks: 10},
		},
	}, fixtures.UnitUser.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	view, err := svc.Get(app.ID, models.RoleBrigade)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// Reviewer reduces the negative magnitude from 5 to 3
	if err := svc.SetApprovedMarks(view.Parameters[0].ID, 3, fixtures.BrigadeUser.ID); err != nil {
		t.Fatalf("SetApprovedMarks: %v", err)
	}

	view, err = svc.Get(app.ID, models.RoleBrigade)
	if err != nil {
		t.Fatalf("Get after override: %v", err)
	}
	if view.Stats.NegativeMarks != 3 || view.Stats.TotalMarks != 7 {
		t.Errorf("Stats = %+v, want NegativeMarks=3 TotalMarks=7", view.Stats)
	}
}
