package pipeline

import (
	"testing"
	"time"

	"awardflow/internal/models"
)

func rolePtr(r models.Role) *models.Role { return &r }

func timePtr(t time.Time) *time.Time { return &t }

func TestResolveStageStepCount(t *testing.T) {
	app := models.Application{StatusFlag: models.StatusPending}

	full := ResolveStage(app, false)
	if len(full.Steps) != 7 {
		t.Errorf("expected 7 steps, got %d", len(full.Steps))
	}

	command := ResolveStage(app, true)
	if len(command.Steps) != 4 {
		t.Errorf("expected 4 steps in command mode, got %d", len(command.Steps))
	}
	for _, s := range command.Steps {
		if s.Label == LabelMO || s.Label == LabelOL || s.Label == LabelCW2 {
			t.Errorf("command mode must omit step %q", s.Label)
		}
	}
}

func TestResolveStageCurrentIndex(t *testing.T) {
	tests := []struct {
		name     string
		app      models.Application
		expected int
	}{
		{
			name:     "fresh application starts at brigade",
			app:      models.Application{StatusFlag: models.StatusPending},
			expected: 0,
		},
		{
			name: "division approved means corps is current",
			app: models.Application{
				StatusFlag:         models.StatusApproved,
				LastApprovedByRole: rolePtr(models.RoleDivision),
			},
			expected: 2,
		},
		{
			name: "command approved moves into side lane",
			app: models.Application{
				StatusFlag:         models.StatusApproved,
				LastApprovedByRole: rolePtr(models.RoleCommand),
			},
			expected: 4,
		},
		{
			name: "single side-lane approval jumps to second slot",
			app: models.Application{
				StatusFlag:         models.StatusApproved,
				LastApprovedByRole: rolePtr(models.RoleCommand),
				MoOl:               models.MoOl{IsMoApproved: true},
			},
			expected: 5,
		},
		{
			name: "both side-lane approvals enter CW2 stage",
			app: models.Application{
				StatusFlag:         models.StatusApproved,
				LastApprovedByRole: rolePtr(models.RoleCommand),
				MoOl:               models.MoOl{IsMoApproved: true, IsOlApproved: true},
			},
			expected: 6,
		},
		{
			name: "finalized completes every step",
			app: models.Application{
				StatusFlag:   models.StatusApproved,
				Finalization: models.Finalization{IsFinalized: true},
			},
			expected: 7,
		},
		{
			name: "finalized wins regardless of other fields",
			app: models.Application{
				StatusFlag:   models.StatusPending,
				MoOl:         models.MoOl{IsMoApproved: true},
				Finalization: models.Finalization{IsFinalized: true},
			},
			expected: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := ResolveStage(tt.app, false)
			if view.CurrentStepIndex != tt.expected {
				t.Errorf("CurrentStepIndex = %d, want %d", view.CurrentStepIndex, tt.expected)
			}
		})
	}
}

func TestResolveStageRejection(t *testing.T) {
	app := models.Application{
		StatusFlag:         models.StatusRejected,
		LastApprovedByRole: rolePtr(models.RoleCorps),
		LastRejectedByRole: rolePtr(models.RoleBrigade),
	}

	view := ResolveStage(app, false)

	// The brigade step is marked rejected even though corps already approved,
	// and the rejection marker becomes the current index.
	if view.CurrentStepIndex != 0 {
		t.Errorf("CurrentStepIndex = %d, want 0", view.CurrentStepIndex)
	}
	if view.Steps[0].Status != StepRejected {
		t.Errorf("brigade step status = %s, want rejected", view.Steps[0].Status)
	}
}

func TestResolveStageRejectionSideLaneAliases(t *testing.T) {
	tests := []struct {
		role          models.Role
		expectedLabel string
	}{
		{models.RoleCW2MO, LabelMO},
		{models.RoleCW2OL, LabelOL},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			app := models.Application{
				StatusFlag:         models.StatusRejected,
				LastRejectedByRole: rolePtr(tt.role),
			}
			view := ResolveStage(app, false)
			step := view.Steps[view.CurrentStepIndex]
			if step.Label != tt.expectedLabel {
				t.Errorf("rejected step label = %q, want %q", step.Label, tt.expectedLabel)
			}
			if step.Status != StepRejected {
				t.Errorf("rejected step status = %s, want rejected", step.Status)
			}
		})
	}
}

func TestResolveStageSideLaneOrdering(t *testing.T) {
	earlier := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	later := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		moOl     models.MoOl
		expected []string
	}{
		{
			name:     "neither approved keeps default order",
			moOl:     models.MoOl{},
			expected: []string{LabelMO, LabelOL},
		},
		{
			name:     "only OL approved lists OL first",
			moOl:     models.MoOl{IsOlApproved: true, OlApprovedAt: timePtr(earlier)},
			expected: []string{LabelOL, LabelMO},
		},
		{
			name: "both approved ordered by earliest timestamp",
			moOl: models.MoOl{
				IsMoApproved: true, MoApprovedAt: timePtr(later),
				IsOlApproved: true, OlApprovedAt: timePtr(earlier),
			},
			expected: []string{LabelOL, LabelMO},
		},
		{
			name: "both approved MO earlier stays first",
			moOl: models.MoOl{
				IsMoApproved: true, MoApprovedAt: timePtr(earlier),
				IsOlApproved: true, OlApprovedAt: timePtr(later),
			},
			expected: []string{LabelMO, LabelOL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := ResolveStage(models.Application{MoOl: tt.moOl}, false)
			got := []string{view.Steps[4].Label, view.Steps[5].Label}
			if got[0] != tt.expected[0] || got[1] != tt.expected[1] {
				t.Errorf("side lane order = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResolveStageDates(t *testing.T) {
	approvedAt := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	finalizedAt := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	app := models.Application{
		StatusFlag: models.StatusApproved,
		Priorities: map[models.Role]models.Priority{
			models.RoleBrigade: {Role: models.RoleBrigade, Priority: 1, AddedAt: approvedAt},
		},
		MoOl:         models.MoOl{IsMoApproved: true, MoApprovedAt: timePtr(approvedAt)},
		Finalization: models.Finalization{IsFinalized: true, FinalizedAt: timePtr(finalizedAt)},
	}

	view := ResolveStage(app, false)

	if view.Steps[0].Date != "02 Apr 2025" {
		t.Errorf("brigade date = %q, want %q", view.Steps[0].Date, "02 Apr 2025")
	}
	if view.Steps[1].Date != datePending {
		t.Errorf("division date = %q, want %q", view.Steps[1].Date, datePending)
	}
	if view.Steps[4].Date != "02 Apr 2025" {
		t.Errorf("MO date = %q, want %q", view.Steps[4].Date, "02 Apr 2025")
	}
	if view.Steps[6].Date != "01 May 2025" {
		t.Errorf("CW2 date = %q, want %q", view.Steps[6].Date, "01 May 2025")
	}
}

func TestResolveStageCW2DateOnlyWhenFinalized(t *testing.T) {
	finalizedAt := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	app := models.Application{
		Finalization: models.Finalization{IsFinalized: false, FinalizedAt: timePtr(finalizedAt)},
	}

	view := ResolveStage(app, false)
	if view.Steps[6].Date != datePending {
		t.Errorf("CW2 date = %q, want %q when not finalized", view.Steps[6].Date, datePending)
	}
}

func TestResolveStageIdempotent(t *testing.T) {
	app := models.Application{
		StatusFlag:         models.StatusApproved,
		LastApprovedByRole: rolePtr(models.RoleDivision),
		MoOl:               models.MoOl{IsMoApproved: true},
	}

	first := ResolveStage(app, false)
	second := ResolveStage(app, false)

	if first.CurrentStepIndex != second.CurrentStepIndex || len(first.Steps) != len(second.Steps) {
		t.Fatalf("ResolveStage is not idempotent")
	}
	for i := range first.Steps {
		if first.Steps[i] != second.Steps[i] {
			t.Errorf("step %d differs between runs: %+v vs %+v", i, first.Steps[i], second.Steps[i])
		}
	}
}

func TestResolveStageToleratesInconsistentSnapshots(t *testing.T) {
	// Grace marks for a role whose approval flag is not set yet must not panic
	// or corrupt the result.
	app := models.Application{
		StatusFlag: models.StatusPending,
		GraceMarks: map[models.Role]models.GraceMark{
			models.RoleCorps: {Role: models.RoleCorps, Marks: 5},
		},
		Priorities: map[models.Role]models.Priority{
			models.RoleCommand: {Role: models.RoleCommand, Priority: 2, AddedAt: time.Now()},
		},
	}

	view := ResolveStage(app, false)
	if view.CurrentStepIndex != 0 {
		t.Errorf("CurrentStepIndex = %d, want 0", view.CurrentStepIndex)
	}
}
