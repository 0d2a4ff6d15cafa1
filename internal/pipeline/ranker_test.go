package pipeline

import (
	"testing"

	"awardflow/internal/models"
)

func TestPriorityFor(t *testing.T) {
	app := models.Application{
		Priorities: map[models.Role]models.Priority{
			models.RoleCorps: {Role: models.RoleCorps, Priority: 3},
		},
	}

	if p, ok := PriorityFor(app, models.RoleCorps); !ok || p != 3 {
		t.Errorf("PriorityFor(corps) = (%d, %v), want (3, true)", p, ok)
	}
	if p, ok := PriorityFor(app, models.Role("CORPS")); !ok || p != 3 {
		t.Errorf("PriorityFor(CORPS) = (%d, %v), want (3, true)", p, ok)
	}
	if _, ok := PriorityFor(app, models.RoleBrigade); ok {
		t.Error("PriorityFor(brigade) should not resolve")
	}
}

func TestSortByPriority(t *testing.T) {
	withPriority := func(id uint, p int) models.Application {
		return models.Application{
			ID: id,
			Priorities: map[models.Role]models.Priority{
				models.RoleCommand: {Role: models.RoleCommand, Priority: p},
			},
		}
	}

	apps := []models.Application{
		{ID: 4}, // no priority, sorts last
		withPriority(1, 2),
		withPriority(2, 1),
		{ID: 5}, // no priority, keeps relative order after 4
		withPriority(3, 3),
	}

	SortByPriority(apps, models.RoleCommand)

	want := []uint{2, 1, 3, 4, 5}
	for i, app := range apps {
		if app.ID != want[i] {
			t.Fatalf("order = %v..., want %v", app.ID, want)
		}
	}
}

func TestGroupByType(t *testing.T) {
	apps := []models.Application{
		{ID: 1, Type: models.TypeCitation},
		{ID: 2, Type: models.TypeAppreciation},
		{ID: 3, Type: models.TypeCitation},
	}

	groups := GroupByType(apps)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	citations := groups[models.TypeCitation]
	if len(citations) != 2 || citations[0] != 1 || citations[1] != 3 {
		t.Errorf("citation group = %v, want [1 3]", citations)
	}
	if len(groups[models.TypeAppreciation]) != 1 {
		t.Errorf("appreciation group = %v, want [2]", groups[models.TypeAppreciation])
	}
}
