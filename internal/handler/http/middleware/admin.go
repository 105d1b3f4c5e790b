package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
)

// AdminOnly guards the /admin routes. Services check the role again.
func AdminOnly(next http.Handler) http.Handler {
	return RequireRole(user.RoleAdmin)(next)
}
