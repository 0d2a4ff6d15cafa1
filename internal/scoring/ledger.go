package scoring

import (
	"awardflow/internal/models"
)

// labelSentinel marks a generic count parameter whose display label is
// inherited from its deepest non-empty grouping field.
const labelSentinel = "no"

// Label is the resolved display labelling of a parameter row
type Label struct {
	Text         string `json:"text"`
	Header       string `json:"header,omitempty"`
	Subheader    string `json:"subheader,omitempty"`
	Subsubheader string `json:"subsubheader,omitempty"`
}

// DisplayLabel resolves the human label for a parameter. Named parameters keep
// their name with the full category chain as headers; sentinel parameters
// descend to the deepest non-empty category level.
func DisplayLabel(p models.Parameter) Label {
	if p.Name != labelSentinel {
		return Label{
			Text:         p.Name,
			Header:       p.Category,
			Subheader:    p.Subcategory,
			Subsubheader: p.Subsubcategory,
		}
	}

	if p.Subsubcategory != "" {
		return Label{
			Text:      p.Subsubcategory,
			Header:    p.Category,
			Subheader: p.Subcategory,
		}
	}
	if p.Subcategory != "" {
		return Label{
			Text:   p.Subcategory,
			Header: p.Category,
		}
	}
	return Label{Text: p.Category}
}

// IsExcluded reports whether a parameter is excluded from all totals.
// Only a rejected clarification excludes; raised and clarified ones still count.
func IsExcluded(p models.Parameter) bool {
	return p.Clarification != nil && p.Clarification.Status == models.ClarificationRejected
}
