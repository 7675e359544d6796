package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gigvora/gigvora-backend/internal/auth"
	"github.com/gigvora/gigvora-backend/internal/httperr"
	"github.com/gigvora/gigvora-backend/internal/pkg/metrics"
)

// SelfAccess configures the authorization stage for a route. Roles is the
// allow-list (empty admits any authenticated identity). MatchParam names a
// route variable that must equal the caller's own id; AllowAdminOverride
// lets the admin role bypass that ownership check.
type SelfAccess struct {
	Roles              []string
	MatchParam         string
	AllowAdminOverride bool
}

// RequireRoles returns middleware that admits only identities whose role is
// in the allow-list. An empty list requires authentication but no specific
// role. Assumes Authenticate ran earlier on the chain.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return RequireSelfOrRoles(SelfAccess{Roles: roles})
}

// RequireSelfOrRoles returns the role gate with an optional ownership check
// against a route parameter.
func RequireSelfOrRoles(sa SelfAccess) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := auth.IdentityFromContext(r.Context())
			if identity == nil {
				writeAuthError(w, r, http.StatusUnauthorized, httperr.Authorization("Authentication required"))
				return
			}
			if !auth.RoleAllowed(identity.Role, sa.Roles) {
				metrics.AuthDeniedTotal.Inc()
				writeAuthError(w, r, http.StatusForbidden, httperr.Authorization("You do not have permission to perform this action."))
				return
			}
			if sa.MatchParam != "" {
				param := mux.Vars(r)[sa.MatchParam]
				if param != identity.ID && !(sa.AllowAdminOverride && identity.IsAdmin()) {
					metrics.AuthDeniedTotal.Inc()
					writeAuthError(w, r, http.StatusForbidden, httperr.Authorization("You do not have permission to perform this action."))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
