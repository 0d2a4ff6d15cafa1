package scoring

import (
	"math"
	"reflect"
	"testing"

	"awardflow/internal/models"
)

func f64(v float64) *float64 { return &v }

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name     string
		params   []models.Parameter
		expected Stats
	}{
		{
			name:     "empty parameter set",
			params:   nil,
			expected: Stats{},
		},
		{
			name: "positive and negative with approved override",
			params: []models.Parameter{
				{Marks: 10, Count: 1},
				{Marks: 5, Negative: true, ApprovedMarks: f64(3), Count: 1},
			},
			expected: Stats{
				TotalParams:   2,
				FilledParams:  2,
				Marks:         10,
				NegativeMarks: 3,
				ApprovedMarks: 0,
				TotalMarks:    7,
			},
		},
		{
			name: "negative falls back to raw marks",
			params: []models.Parameter{
				{Marks: 10, Count: 2},
				{Marks: 4, Negative: true, Count: 1},
			},
			expected: Stats{
				TotalParams:   2,
				FilledParams:  2,
				Marks:         10,
				NegativeMarks: 4,
				TotalMarks:    6,
			},
		},
		{
			name: "approved marks add to positive parameters",
			params: []models.Parameter{
				{Marks: 10, ApprovedMarks: f64(2), Count: 1},
				{Marks: 5, Count: 1},
			},
			expected: Stats{
				TotalParams:   2,
				FilledParams:  2,
				Marks:         15,
				ApprovedMarks: 2,
				TotalMarks:    17,
			},
		},
		{
			name: "total clamped at zero",
			params: []models.Parameter{
				{Marks: 2, Count: 1},
				{Marks: 20, Negative: true, Count: 1},
			},
			expected: Stats{
				TotalParams:   2,
				FilledParams:  2,
				Marks:         2,
				NegativeMarks: 20,
				TotalMarks:    0,
			},
		},
		{
			name: "unfilled parameters counted in total only",
			params: []models.Parameter{
				{Marks: 10, Count: 1},
				{},
				{},
			},
			expected: Stats{
				TotalParams:  3,
				FilledParams: 1,
				Marks:        10,
				TotalMarks:   10,
			},
		},
		{
			name: "NaN marks coerced to zero",
			params: []models.Parameter{
				{Marks: math.NaN(), Count: 1},
				{Marks: 5, Count: 1},
			},
			expected: Stats{
				TotalParams:  2,
				FilledParams: 1,
				Marks:        5,
				TotalMarks:   5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(tt.params)
			if got != tt.expected {
				t.Errorf("ComputeStats() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestComputeStatsRejectedClarificationExcluded(t *testing.T) {
	rejected := &models.ClarificationDetails{Status: models.ClarificationRejected}

	withRejected := []models.Parameter{
		{Marks: 10, Count: 1},
		{Marks: 7, Count: 1, Clarification: rejected},
		{Marks: 3, Negative: true, Count: 1, Clarification: rejected},
		{Marks: 2, ApprovedMarks: f64(4), Count: 1, Clarification: rejected},
	}
	without := []models.Parameter{
		{Marks: 10, Count: 1},
	}

	got := ComputeStats(withRejected)
	want := ComputeStats(without)

	// The excluded rows still count toward TotalParams/FilledParams
	got.TotalParams = want.TotalParams
	got.FilledParams = want.FilledParams

	if got != want {
		t.Errorf("rejected clarifications must not influence totals: got %+v, want %+v", got, want)
	}
}

func TestComputeStatsIdempotent(t *testing.T) {
	params := []models.Parameter{
		{Marks: 10, Count: 1},
		{Marks: 5, Negative: true, ApprovedMarks: f64(3), Count: 1},
		{Marks: 2, Clarification: &models.ClarificationDetails{Status: models.ClarificationRaised}},
	}

	first := ComputeStats(params)
	second := ComputeStats(params)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("ComputeStats is not idempotent: %+v != %+v", first, second)
	}
}

func TestAdjustedTotal(t *testing.T) {
	grace := map[models.Role]models.GraceMark{
		models.RoleBrigade:  {Role: models.RoleBrigade, Marks: 5},
		models.RoleDivision: {Role: models.RoleDivision, Marks: 3},
		models.RoleCommand:  {Role: models.RoleCommand, Marks: 2},
	}
	stats := Stats{TotalMarks: 20}

	tests := []struct {
		name     string
		self     models.Role
		opts     []Option
		expected float64
	}{
		{
			name:     "self grace excluded before recombination",
			self:     models.RoleBrigade,
			expected: 25, // 20 - 5 + (5+3+2)
		},
		{
			name:     "role without own grace loses nothing",
			self:     models.RoleCorps,
			expected: 30, // 20 - 0 + 10
		},
		{
			name:     "include-self flag keeps own grace",
			self:     models.RoleBrigade,
			opts:     []Option{IncludeSelfGrace()},
			expected: 30, // 20 + 10
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustedTotal(stats, grace, tt.self, tt.opts...)
			if got != tt.expected {
				t.Errorf("AdjustedTotal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAdjustedTotalClamped(t *testing.T) {
	grace := map[models.Role]models.GraceMark{
		models.RoleCommand: {Role: models.RoleCommand, Marks: 1},
	}
	// Self grace larger than everything else cannot push the total negative
	grace[models.RoleBrigade] = models.GraceMark{Role: models.RoleBrigade, Marks: 0}

	got := AdjustedTotal(Stats{TotalMarks: 0}, grace, models.RoleCommand)
	if got != 0 {
		t.Errorf("AdjustedTotal() = %v, want 0", got)
	}
}

func TestLastGraceMark(t *testing.T) {
	tests := []struct {
		name         string
		grace        map[models.Role]models.GraceMark
		expectedRole models.Role
		expectedVal  float64
		expectedOK   bool
	}{
		{
			name: "most senior role wins",
			grace: map[models.Role]models.GraceMark{
				models.RoleBrigade: {Marks: 5},
				models.RoleCorps:   {Marks: 7},
			},
			expectedRole: models.RoleCorps,
			expectedVal:  7,
			expectedOK:   true,
		},
		{
			name: "command beats everything",
			grace: map[models.Role]models.GraceMark{
				models.RoleBrigade: {Marks: 5},
				models.RoleCommand: {Marks: 1},
			},
			expectedRole: models.RoleCommand,
			expectedVal:  1,
			expectedOK:   true,
		},
		{
			name:       "empty map",
			grace:      map[models.Role]models.GraceMark{},
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, val, ok := LastGraceMark(tt.grace)
			if ok != tt.expectedOK {
				t.Fatalf("LastGraceMark() ok = %v, want %v", ok, tt.expectedOK)
			}
			if ok && (role != tt.expectedRole || val != tt.expectedVal) {
				t.Errorf("LastGraceMark() = (%s, %v), want (%s, %v)", role, val, tt.expectedRole, tt.expectedVal)
			}
		})
	}
}
