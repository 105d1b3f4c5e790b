package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
)

// RequireRole lets the request through when the caller holds one of roles.
// It must run after AuthRequired.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if !principal.IsAuthenticated() {
				response.HandleError(w, user.ErrUnauthenticated)
				return
			}

			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
		})
	}
}
