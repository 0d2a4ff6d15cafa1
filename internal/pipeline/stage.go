package pipeline

import (
	"strings"
	"time"

	"awardflow/internal/models"
)

// Step labels as rendered in the progress tracker
const (
	LabelBrigade  = "Brigade"
	LabelDivision = "Division"
	LabelCorps    = "Corps"
	LabelCommand  = "Command"
	LabelMO       = "Medical Officer (MO)"
	LabelOL       = "Operational Leader (OL)"
	LabelCW2      = "CW2"
)

// datePending is rendered when a step has no resolvable timestamp
const datePending = "Pending"

const dateFormat = "02 Jan 2006"

// StepStatus is the render state of one tracker step
type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepCurrent   StepStatus = "current"
	StepPending   StepStatus = "pending"
	StepRejected  StepStatus = "rejected"
)

// Step is one entry of the progress tracker
type Step struct {
	Label  string     `json:"label"`
	Status StepStatus `json:"status"`
	Date   string     `json:"date"`
}

// StageView is the resolved pipeline position of an application
type StageView struct {
	Steps            []Step `json:"steps"`
	CurrentStepIndex int    `json:"current_step_index"`
}

// hierarchyIndex maps hierarchy roles to their fixed stage indices
var hierarchyIndex = map[models.Role]int{
	models.RoleBrigade:  0,
	models.RoleDivision: 1,
	models.RoleCorps:    2,
	models.RoleCommand:  3,
}

// rejectionLabel maps every role that can reject to the label of its step.
// The CW2 lane roles alias onto the MO/OL steps.
var rejectionLabel = map[models.Role]string{
	models.RoleBrigade:  LabelBrigade,
	models.RoleDivision: LabelDivision,
	models.RoleCorps:    LabelCorps,
	models.RoleCommand:  LabelCommand,
	models.RoleCW2MO:    LabelMO,
	models.RoleCW2OL:    LabelOL,
}

// ResolveStage determines the tracker steps and the current position for an
// application snapshot. In command mode (unit applications) the MO/OL and CW2
// steps are omitted entirely. The computation is pure: calling it twice on the
// same snapshot yields identical output.
func ResolveStage(app models.Application, commandMode bool) StageView {
	steps := buildSteps(app, commandMode)

	current := currentStepIndex(app, steps, commandMode)

	rejectedIdx := -1
	if app.StatusFlag == models.StatusRejected && app.LastRejectedByRole != nil {
		rejectedIdx = rejectionStepIndex(steps, *app.LastRejectedByRole)
		if rejectedIdx >= 0 {
			current = rejectedIdx
		}
	}

	for i := range steps {
		switch {
		case i == rejectedIdx:
			steps[i].Status = StepRejected
		case i < current:
			steps[i].Status = StepCompleted
		case i == current:
			steps[i].Status = StepCurrent
		default:
			steps[i].Status = StepPending
		}
	}

	return StageView{Steps: steps, CurrentStepIndex: current}
}

// buildSteps assembles the tracker steps with their resolved dates. MO/OL
// ordering follows the earliest approval timestamp; a single approved lane is
// listed first; with neither approved the default order is [MO, OL].
func buildSteps(app models.Application, commandMode bool) []Step {
	steps := []Step{
		{Label: LabelBrigade, Date: priorityDate(app, models.RoleBrigade)},
		{Label: LabelDivision, Date: priorityDate(app, models.RoleDivision)},
		{Label: LabelCorps, Date: priorityDate(app, models.RoleCorps)},
		{Label: LabelCommand, Date: priorityDate(app, models.RoleCommand)},
	}
	if commandMode {
		return steps
	}

	moStep := Step{Label: LabelMO, Date: formatDate(app.MoOl.MoApprovedAt)}
	olStep := Step{Label: LabelOL, Date: formatDate(app.MoOl.OlApprovedAt)}

	first, second := moStep, olStep
	switch SideLane(app.MoOl) {
	case SideLaneBoth:
		if app.MoOl.OlApprovedAt != nil && app.MoOl.MoApprovedAt != nil &&
			app.MoOl.OlApprovedAt.Before(*app.MoOl.MoApprovedAt) {
			first, second = olStep, moStep
		}
	case SideLaneOlOnly:
		first, second = olStep, moStep
	}
	steps = append(steps, first, second)

	cw2Date := datePending
	if app.Finalization.IsFinalized {
		cw2Date = formatDate(app.Finalization.FinalizedAt)
	}
	steps = append(steps, Step{Label: LabelCW2, Date: cw2Date})

	return steps
}

// currentStepIndex computes the current position ignoring rejection markers
func currentStepIndex(app models.Application, steps []Step, commandMode bool) int {
	base := -1
	if app.LastApprovedByRole != nil {
		if idx, ok := hierarchyIndex[*app.LastApprovedByRole]; ok {
			base = idx
		}
	}
	step := base + 1

	if !commandMode {
		switch SideLane(app.MoOl) {
		case SideLaneMoOnly, SideLaneOlOnly:
			step = 5
		case SideLaneBoth:
			step = 6
		}
	}

	if app.Finalization.IsFinalized {
		step = len(steps)
	}

	return step
}

// rejectionStepIndex finds the step a rejecting role maps to. The explicit
// label table covers all known roles; an exact-then-substring match against
// the step labels is kept as a fallback for legacy role spellings.
func rejectionStepIndex(steps []Step, role models.Role) int {
	if label, ok := rejectionLabel[role]; ok {
		for i, s := range steps {
			if s.Label == label {
				return i
			}
		}
	}

	// Legacy fallback: case-insensitive substring match of the role name
	// against the step labels.
	needle := strings.ToLower(string(role))
	for i, s := range steps {
		if strings.Contains(strings.ToLower(s.Label), needle) {
			return i
		}
	}
	return -1
}

// priorityDate resolves a hierarchy step's date from the role's
// priority-addition timestamp, matching the role case-insensitively
func priorityDate(app models.Application, role models.Role) string {
	for r, p := range app.Priorities {
		if strings.EqualFold(string(r), string(role)) {
			return p.AddedAt.Format(dateFormat)
		}
	}
	return datePending
}

func formatDate(t *time.Time) string {
	if t == nil {
		return datePending
	}
	return t.Format(dateFormat)
}
