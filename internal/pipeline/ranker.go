package pipeline

import (
	"sort"
	"strings"

	"awardflow/internal/models"
)

// PriorityFor looks up the acting role's priority value, matching the role
// case-insensitively. The second return is false when the role has not set one.
func PriorityFor(app models.Application, role models.Role) (int, bool) {
	for r, p := range app.Priorities {
		if strings.EqualFold(string(r), string(role)) {
			return p.Priority, true
		}
	}
	return 0, false
}

// GraceMarksFor looks up the acting role's grace marks, matching the role
// case-insensitively
func GraceMarksFor(app models.Application, role models.Role) (float64, bool) {
	for r, g := range app.GraceMarks {
		if strings.EqualFold(string(r), string(role)) {
			return g.Marks, true
		}
	}
	return 0, false
}

// Decision is the outcome of a policy gate: refusals carry a user-facing reason
// and never mutate state
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func allow() Decision          { return Decision{Allowed: true} }
func refuse(r string) Decision { return Decision{Allowed: false, Reason: r} }

// CanApprove gates an individual approve action: the acting role must already
// have set both its priority and its grace marks for the application.
func CanApprove(app models.Application, role models.Role) Decision {
	if _, ok := PriorityFor(app, role); !ok {
		return refuse("priority must be set before approving")
	}
	if _, ok := GraceMarksFor(app, role); !ok {
		return refuse("grace marks must be set before approving")
	}
	return allow()
}

// SortByPriority orders applications by the acting role's priority value,
// ascending. Applications without a priority for that role sort last, keeping
// their relative order.
func SortByPriority(apps []models.Application, role models.Role) {
	sort.SliceStable(apps, func(i, j int) bool {
		pi, iok := PriorityFor(apps[i], role)
		pj, jok := PriorityFor(apps[j], role)
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return pi < pj
	})
}

// GroupByType partitions applications into per-type id groups for the bulk
// approval protocol: one approval call per group, at-least-once semantics.
func GroupByType(apps []models.Application) map[models.ApplicationType][]uint {
	groups := make(map[models.ApplicationType][]uint)
	for _, app := range apps {
		groups[app.Type] = append(groups[app.Type], app.ID)
	}
	return groups
}
