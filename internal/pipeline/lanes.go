package pipeline

import (
	"awardflow/internal/models"
)

// The raw read model carries its pipeline position as independent flags and
// role markers. Each lane below derives a single tagged state from them so
// transition checks never have to consult flag combinations directly.

// HierarchyState is the derived state of the primary brigade→command lane
type HierarchyState string

const (
	HierarchyInProgress HierarchyState = "in_progress"
	HierarchyApproved   HierarchyState = "approved"
	HierarchyRejected   HierarchyState = "rejected"
	HierarchyWithdrawn  HierarchyState = "withdrawn"
)

// HierarchyLane derives the primary-lane state from the status flag
func HierarchyLane(app models.Application) HierarchyState {
	switch app.StatusFlag {
	case models.StatusRejected:
		return HierarchyRejected
	case models.StatusWithdrawed:
		return HierarchyWithdrawn
	case models.StatusApproved, models.StatusInReview, models.StatusShortlistedApproved:
		return HierarchyApproved
	default:
		return HierarchyInProgress
	}
}

// SideLaneState is the derived state of the MO/OL approval lane
type SideLaneState string

const (
	SideLaneNone   SideLaneState = "none"
	SideLaneMoOnly SideLaneState = "mo_only"
	SideLaneOlOnly SideLaneState = "ol_only"
	SideLaneBoth   SideLaneState = "both"
)

// SideLane derives the MO/OL lane state
func SideLane(moOl models.MoOl) SideLaneState {
	switch {
	case moOl.IsMoApproved && moOl.IsOlApproved:
		return SideLaneBoth
	case moOl.IsMoApproved:
		return SideLaneMoOnly
	case moOl.IsOlApproved:
		return SideLaneOlOnly
	default:
		return SideLaneNone
	}
}

// WithdrawalLaneState is the derived state of the withdrawal lane
type WithdrawalLaneState string

const (
	WithdrawalNone     WithdrawalLaneState = "none"
	WithdrawalPending  WithdrawalLaneState = "pending"
	WithdrawalApproved WithdrawalLaneState = "approved"
	WithdrawalRejected WithdrawalLaneState = "rejected"
)

// WithdrawalState derives the withdrawal lane state. Approved and rejected
// are terminal.
func WithdrawalState(app models.Application) WithdrawalLaneState {
	w := app.Withdrawal
	if w == nil || !w.IsRequested {
		return WithdrawalNone
	}
	switch w.Status {
	case models.WithdrawApproved:
		return WithdrawalApproved
	case models.WithdrawRejected:
		return WithdrawalRejected
	default:
		return WithdrawalPending
	}
}

// FinalizationLaneState is the derived state of the finalization lane
type FinalizationLaneState string

const (
	FinalizationOpen      FinalizationLaneState = "open"
	FinalizationEligible  FinalizationLaneState = "eligible"
	FinalizationFinalized FinalizationLaneState = "finalized"
)

// FinalizationLane derives the finalization lane state
func FinalizationLane(app models.Application) FinalizationLaneState {
	if app.Finalization.IsFinalized {
		return FinalizationFinalized
	}
	if CanFinalize(app) {
		return FinalizationEligible
	}
	return FinalizationOpen
}
