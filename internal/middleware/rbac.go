package middleware

import (
	"net/http"

	"awardflow/internal/models"
)

// RBACMiddleware gates routes by the role carried in the JWT claims.
// A user holds exactly one role in the approval hierarchy.
type RBACMiddleware struct{}

// NewRBACMiddleware creates a new RBAC middleware
func NewRBACMiddleware() *RBACMiddleware {
	return &RBACMiddleware{}
}

// RequireRole checks that the user holds exactly the given role
func (m *RBACMiddleware) RequireRole(role models.Role) func(http.Handler) http.Handler {
	return m.RequireAnyRole(role)
}

// RequireAnyRole checks that the user holds one of the given roles
func (m *RBACMiddleware) RequireAnyRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole, ok := GetUserRole(r)
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "User not authenticated")
				return
			}

			for _, required := range roles {
				if userRole == required {
					next.ServeHTTP(w, r)
					return
				}
			}

			respondWithError(w, http.StatusForbidden, "Insufficient permissions")
		})
	}
}

// RequireReviewer admits the hierarchy reviewer roles (brigade through command)
func (m *RBACMiddleware) RequireReviewer() func(http.Handler) http.Handler {
	return m.RequireAnyRole(models.RoleBrigade, models.RoleDivision, models.RoleCorps, models.RoleCommand)
}

// RequireSideLane admits the CW2 side-lane roles
func (m *RBACMiddleware) RequireSideLane() func(http.Handler) http.Handler {
	return m.RequireAnyRole(models.RoleCW2MO, models.RoleCW2OL)
}

// RequireNonUnit admits every role except unit
func (m *RBACMiddleware) RequireNonUnit() func(http.Handler) http.Handler {
	return m.RequireAnyRole(models.RoleBrigade, models.RoleDivision, models.RoleCorps,
		models.RoleCommand, models.RoleCW2MO, models.RoleCW2OL)
}
