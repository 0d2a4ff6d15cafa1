package pipeline

import (
	"awardflow/internal/models"
)

// CanRequestWithdrawal gates a new withdrawal request: only non-unit roles may
// request, rejected applications cannot be withdrawn, and a withdrawal that
// already reached a terminal decision cannot be reopened.
func CanRequestWithdrawal(app models.Application, role models.Role) Decision {
	if role == models.RoleUnit {
		return refuse("units cannot request withdrawal")
	}
	if app.StatusFlag == models.StatusRejected {
		return refuse("rejected applications cannot be withdrawn")
	}
	switch WithdrawalState(app) {
	case WithdrawalPending:
		return refuse("a withdrawal request is already pending")
	case WithdrawalApproved, WithdrawalRejected:
		return refuse("withdrawal has already been decided")
	}
	return allow()
}

// CanDecideWithdrawal gates the approve/reject decision on a withdrawal
// request. Only a pending request can be decided; both outcomes are terminal.
func CanDecideWithdrawal(app models.Application) Decision {
	switch WithdrawalState(app) {
	case WithdrawalNone:
		return refuse("no withdrawal request to decide")
	case WithdrawalApproved, WithdrawalRejected:
		return refuse("withdrawal has already been decided")
	}
	return allow()
}

// CanFinalize reports whether an application is eligible for the finalization
// batch: command approval on the primary lane plus both MO and OL sign-offs.
// Already-finalized applications are not eligible again.
func CanFinalize(app models.Application) bool {
	if app.Finalization.IsFinalized {
		return false
	}
	if app.LastApprovedByRole == nil || *app.LastApprovedByRole != models.RoleCommand {
		return false
	}
	if app.StatusFlag != models.StatusApproved {
		return false
	}
	return SideLane(app.MoOl) == SideLaneBoth
}
