package pipeline

import (
	"testing"

	"awardflow/internal/models"
)

func TestCanApprove(t *testing.T) {
	withBoth := models.Application{
		Priorities: map[models.Role]models.Priority{
			models.RoleBrigade: {Role: models.RoleBrigade, Priority: 1},
		},
		GraceMarks: map[models.Role]models.GraceMark{
			models.RoleBrigade: {Role: models.RoleBrigade, Marks: 3},
		},
	}

	tests := []struct {
		name    string
		app     models.Application
		role    models.Role
		allowed bool
	}{
		{
			name:    "priority and grace marks present",
			app:     withBoth,
			role:    models.RoleBrigade,
			allowed: true,
		},
		{
			name:    "role lookup is case-insensitive",
			app:     withBoth,
			role:    models.Role("Brigade"),
			allowed: true,
		},
		{
			name: "missing priority refused",
			app: models.Application{
				GraceMarks: map[models.Role]models.GraceMark{
					models.RoleBrigade: {Role: models.RoleBrigade, Marks: 3},
				},
			},
			role:    models.RoleBrigade,
			allowed: false,
		},
		{
			name: "missing grace marks refused",
			app: models.Application{
				Priorities: map[models.Role]models.Priority{
					models.RoleBrigade: {Role: models.RoleBrigade, Priority: 1},
				},
			},
			role:    models.RoleBrigade,
			allowed: false,
		},
		{
			name:    "other role's entries do not count",
			app:     withBoth,
			role:    models.RoleDivision,
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanApprove(tt.app, tt.role)
			if d.Allowed != tt.allowed {
				t.Errorf("CanApprove() = %+v, want allowed=%v", d, tt.allowed)
			}
			if !d.Allowed && d.Reason == "" {
				t.Error("refusal must carry a reason")
			}
		})
	}
}

func TestCanRequestWithdrawal(t *testing.T) {
	tests := []struct {
		name    string
		app     models.Application
		role    models.Role
		allowed bool
	}{
		{
			name:    "reviewing role on live application",
			app:     models.Application{StatusFlag: models.StatusApproved},
			role:    models.RoleDivision,
			allowed: true,
		},
		{
			name:    "unit role refused",
			app:     models.Application{StatusFlag: models.StatusApproved},
			role:    models.RoleUnit,
			allowed: false,
		},
		{
			name:    "rejected application refused",
			app:     models.Application{StatusFlag: models.StatusRejected},
			role:    models.RoleDivision,
			allowed: false,
		},
		{
			name: "pending request blocks a second one",
			app: models.Application{
				StatusFlag: models.StatusApproved,
				Withdrawal: &models.Withdrawal{IsRequested: true, Status: models.WithdrawPending},
			},
			role:    models.RoleDivision,
			allowed: false,
		},
		{
			name: "decided withdrawal is terminal",
			app: models.Application{
				StatusFlag: models.StatusApproved,
				Withdrawal: &models.Withdrawal{IsRequested: true, Status: models.WithdrawRejected},
			},
			role:    models.RoleDivision,
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanRequestWithdrawal(tt.app, tt.role)
			if d.Allowed != tt.allowed {
				t.Errorf("CanRequestWithdrawal() = %+v, want allowed=%v", d, tt.allowed)
			}
		})
	}
}

func TestCanDecideWithdrawal(t *testing.T) {
	tests := []struct {
		name    string
		app     models.Application
		allowed bool
	}{
		{
			name:    "no request",
			app:     models.Application{},
			allowed: false,
		},
		{
			name: "pending request can be decided",
			app: models.Application{
				Withdrawal: &models.Withdrawal{IsRequested: true, Status: models.WithdrawPending},
			},
			allowed: true,
		},
		{
			name: "approved is terminal",
			app: models.Application{
				Withdrawal: &models.Withdrawal{IsRequested: true, Status: models.WithdrawApproved},
			},
			allowed: false,
		},
		{
			name: "rejected is terminal",
			app: models.Application{
				Withdrawal: &models.Withdrawal{IsRequested: true, Status: models.WithdrawRejected},
			},
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanDecideWithdrawal(tt.app)
			if d.Allowed != tt.allowed {
				t.Errorf("CanDecideWithdrawal() = %+v, want allowed=%v", d, tt.allowed)
			}
		})
	}
}

func TestCanFinalize(t *testing.T) {
	eligible := models.Application{
		StatusFlag:         models.StatusApproved,
		LastApprovedByRole: rolePtr(models.RoleCommand),
		MoOl:               models.MoOl{IsMoApproved: true, IsOlApproved: true},
	}

	tests := []struct {
		name     string
		mutate   func(models.Application) models.Application
		expected bool
	}{
		{
			name:     "fully approved is eligible",
			mutate:   func(a models.Application) models.Application { return a },
			expected: true,
		},
		{
			name: "missing MO approval excludes regardless of status",
			mutate: func(a models.Application) models.Application {
				a.MoOl.IsMoApproved = false
				return a
			},
			expected: false,
		},
		{
			name: "missing OL approval excludes",
			mutate: func(a models.Application) models.Application {
				a.MoOl.IsOlApproved = false
				return a
			},
			expected: false,
		},
		{
			name: "corps-level approval is not enough",
			mutate: func(a models.Application) models.Application {
				a.LastApprovedByRole = rolePtr(models.RoleCorps)
				return a
			},
			expected: false,
		},
		{
			name: "non-approved status excludes",
			mutate: func(a models.Application) models.Application {
				a.StatusFlag = models.StatusInReview
				return a
			},
			expected: false,
		},
		{
			name: "already finalized is not selectable again",
			mutate: func(a models.Application) models.Application {
				a.Finalization.IsFinalized = true
				return a
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanFinalize(tt.mutate(eligible)); got != tt.expected {
				t.Errorf("CanFinalize() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWithdrawalState(t *testing.T) {
	tests := []struct {
		name     string
		app      models.Application
		expected WithdrawalLaneState
	}{
		{"nil withdrawal", models.Application{}, WithdrawalNone},
		{
			"requested but not flagged",
			models.Application{Withdrawal: &models.Withdrawal{}},
			WithdrawalNone,
		},
		{
			"pending",
			models.Application{Withdrawal: &models.Withdrawal{IsRequested: true, Status: models.WithdrawPending}},
			WithdrawalPending,
		},
		{
			"approved",
			models.Application{Withdrawal: &models.Withdrawal{IsRequested: true, Status: models.WithdrawApproved}},
			WithdrawalApproved,
		},
		{
			"rejected",
			models.Application{Withdrawal: &models.Withdrawal{IsRequested: true, Status: models.WithdrawRejected}},
			WithdrawalRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithdrawalState(tt.app); got != tt.expected {
				t.Errorf("WithdrawalState() = %s, want %s", got, tt.expected)
			}
		})
	}
}
