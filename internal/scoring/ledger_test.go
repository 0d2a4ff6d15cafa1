package scoring

import (
	"testing"

	"awardflow/internal/models"
)

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name     string
		param    models.Parameter
		expected Label
	}{
		{
			name: "named parameter keeps full category chain",
			param: models.Parameter{
				Name:           "Gallantry action",
				Category:       "Operations",
				Subcategory:    "Counter insurgency",
				Subsubcategory: "Night ops",
			},
			expected: Label{
				Text:         "Gallantry action",
				Header:       "Operations",
				Subheader:    "Counter insurgency",
				Subsubheader: "Night ops",
			},
		},
		{
			name: "sentinel descends to subsubcategory",
			param: models.Parameter{
				Name:           "no",
				Category:       "Operations",
				Subcategory:    "Counter insurgency",
				Subsubcategory: "Night ops",
			},
			expected: Label{
				Text:      "Night ops",
				Header:    "Operations",
				Subheader: "Counter insurgency",
			},
		},
		{
			name: "sentinel falls back to subcategory",
			param: models.Parameter{
				Name:        "no",
				Category:    "Operations",
				Subcategory: "Counter insurgency",
			},
			expected: Label{
				Text:   "Counter insurgency",
				Header: "Operations",
			},
		},
		{
			name: "sentinel falls back to category with no header",
			param: models.Parameter{
				Name:     "no",
				Category: "Operations",
			},
			expected: Label{Text: "Operations"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisplayLabel(tt.param)
			if got != tt.expected {
				t.Errorf("DisplayLabel() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestIsExcluded(t *testing.T) {
	tests := []struct {
		name     string
		param    models.Parameter
		expected bool
	}{
		{
			name:     "no clarification",
			param:    models.Parameter{},
			expected: false,
		},
		{
			name:     "raised clarification still counts",
			param:    models.Parameter{Clarification: &models.ClarificationDetails{Status: models.ClarificationRaised}},
			expected: false,
		},
		{
			name:     "clarified clarification still counts",
			param:    models.Parameter{Clarification: &models.ClarificationDetails{Status: models.ClarificationClarified}},
			expected: false,
		},
		{
			name:     "rejected clarification excludes",
			param:    models.Parameter{Clarification: &models.ClarificationDetails{Status: models.ClarificationRejected}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExcluded(tt.param); got != tt.expected {
				t.Errorf("IsExcluded() = %v, want %v", got, tt.expected)
			}
		})
	}
}
