package scoring

import (
	"math"

	"awardflow/internal/models"
)

// RoleOrder is the fixed hierarchy ordering used for display rows and for
// "last non-empty wins" grace-mark selection in reports.
var RoleOrder = []models.Role{
	models.RoleBrigade,
	models.RoleDivision,
	models.RoleCorps,
	models.RoleCommand,
}

// Stats holds the aggregated totals of a parameter set
type Stats struct {
	TotalParams   int     `json:"total_params"`
	FilledParams  int     `json:"filled_params"`
	Marks         float64 `json:"marks"`
	NegativeMarks float64 `json:"negative_marks"`
	ApprovedMarks float64 `json:"approved_marks"`
	TotalMarks    float64 `json:"total_marks"`
}

// ComputeStats reduces a parameter set into totals. Parameters with a rejected
// clarification contribute nothing. Negative parameters are tracked separately:
// their magnitude uses approved_marks when present and positive, else raw marks.
// TotalMarks is clamped at zero. Absent or NaN values count as zero; the
// function never fails.
func ComputeStats(params []models.Parameter) Stats {
	stats := Stats{TotalParams: len(params)}

	for _, p := range params {
		count := sanitize(p.Count)
		marks := sanitize(p.Marks)

		if count > 0 || marks > 0 {
			stats.FilledParams++
		}

		if IsExcluded(p) {
			continue
		}

		approved := 0.0
		if p.ApprovedMarks != nil {
			approved = sanitize(*p.ApprovedMarks)
		}

		if p.Negative {
			if approved > 0 {
				stats.NegativeMarks += approved
			} else {
				stats.NegativeMarks += marks
			}
			continue
		}

		stats.Marks += marks
		if approved > 0 {
			stats.ApprovedMarks += approved
		}
	}

	stats.TotalMarks = clamp(stats.Marks + stats.ApprovedMarks - stats.NegativeMarks)
	return stats
}

// Option adjusts the headquarters adjusted-total computation
type Option func(*adjustOptions)

type adjustOptions struct {
	includeSelfGrace bool
}

// IncludeSelfGrace disables the self-exclusion so a role's own grace marks stay
// inside the recombined total. The default (self-excluding) behaviour matches
// the observed product rule; this option exists to cover the alternative
// reading until the rule is confirmed.
func IncludeSelfGrace() Option {
	return func(o *adjustOptions) { o.includeSelfGrace = true }
}

// AdjustedTotal recomputes the headquarters-level grand total: the role's own
// grace marks are removed once before the sum across all roles is added back,
// so a role's discretionary input is only ever counted through the generic sum.
// The result is clamped at zero.
func AdjustedTotal(stats Stats, grace map[models.Role]models.GraceMark, self models.Role, opts ...Option) float64 {
	var o adjustOptions
	for _, opt := range opts {
		opt(&o)
	}

	total := stats.TotalMarks
	if !o.includeSelfGrace {
		if gm, ok := grace[self]; ok {
			total -= sanitize(gm.Marks)
		}
	}

	for _, role := range RoleOrder {
		if gm, ok := grace[role]; ok {
			total += sanitize(gm.Marks)
		}
	}

	return clamp(total)
}

// GraceTotal sums grace marks across all hierarchy roles
func GraceTotal(grace map[models.Role]models.GraceMark) float64 {
	var total float64
	for _, role := range RoleOrder {
		if gm, ok := grace[role]; ok {
			total += sanitize(gm.Marks)
		}
	}
	return total
}

// LastGraceMark returns the highest-ranked role that has set grace marks,
// iterating RoleOrder in reverse (command first). Used for report rendering
// where the most senior non-empty value wins.
func LastGraceMark(grace map[models.Role]models.GraceMark) (models.Role, float64, bool) {
	for i := len(RoleOrder) - 1; i >= 0; i-- {
		if gm, ok := grace[RoleOrder[i]]; ok {
			return RoleOrder[i], sanitize(gm.Marks), true
		}
	}
	return "", 0, false
}

// sanitize coerces NaN and infinities to zero
func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
