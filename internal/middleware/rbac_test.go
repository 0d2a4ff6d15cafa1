package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"awardflow/internal/models"
)

func roleRequest(role models.Role) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	ctx := context.WithValue(r.Context(), UserRoleKey, role)
	return r.WithContext(ctx)
}

func gateStatus(t *testing.T, gate func(http.Handler) http.Handler, role models.Role) int {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	gate(next).ServeHTTP(rec, roleRequest(role))
	return rec.Code
}

func TestRequireAnyRole(t *testing.T) {
	m := NewRBACMiddleware()

	tests := []struct {
		name string
		gate func(http.Handler) http.Handler
		role models.Role
		want int
	}{
		{"reviewer admits brigade", m.RequireReviewer(), models.RoleBrigade, http.StatusOK},
		{"reviewer admits command", m.RequireReviewer(), models.RoleCommand, http.StatusOK},
		{"reviewer blocks unit", m.RequireReviewer(), models.RoleUnit, http.StatusForbidden},
		{"reviewer blocks cw2", m.RequireReviewer(), models.RoleCW2MO, http.StatusForbidden},
		{"side lane admits mo", m.RequireSideLane(), models.RoleCW2MO, http.StatusOK},
		{"side lane admits ol", m.RequireSideLane(), models.RoleCW2OL, http.StatusOK},
		{"side lane blocks command", m.RequireSideLane(), models.RoleCommand, http.StatusForbidden},
		{"non-unit admits brigade", m.RequireNonUnit(), models.RoleBrigade, http.StatusOK},
		{"non-unit admits cw2 mo", m.RequireNonUnit(), models.RoleCW2MO, http.StatusOK},
		{"non-unit admits cw2 ol", m.RequireNonUnit(), models.RoleCW2OL, http.StatusOK},
		{"non-unit blocks unit", m.RequireNonUnit(), models.RoleUnit, http.StatusForbidden},
		{"exact role admits match", m.RequireRole(models.RoleCommand), models.RoleCommand, http.StatusOK},
		{"exact role blocks others", m.RequireRole(models.RoleCommand), models.RoleCorps, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gateStatus(t, tt.gate, tt.role); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRequireRoleUnauthenticated(t *testing.T) {
	m := NewRBACMiddleware()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	m.RequireReviewer()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
