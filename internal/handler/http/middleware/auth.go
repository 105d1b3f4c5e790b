package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type principalKey struct{}

// AuthRequired rejects requests without a verified access token and stores
// the caller's user.Principal in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, user.ErrUnauthenticated)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.Unauthorized(w, "Invalid token type")
				return
			}

			userID, _ := claims["user_id"].(string)
			role, _ := claims["role"].(string)
			principal := user.Principal{UserID: userID, Role: user.Role(role)}
			if !principal.IsAuthenticated() {
				response.HandleError(w, user.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		}
		return http.HandlerFunc(hfn)
	}
}

func WithPrincipal(ctx context.Context, principal user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFromContext returns the zero Principal when the request was not authenticated.
func PrincipalFromContext(ctx context.Context) user.Principal {
	principal, _ := ctx.Value(principalKey{}).(user.Principal)
	return principal
}
