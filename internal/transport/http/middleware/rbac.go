package middleware

import (
	"net/http"
	"strings"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

// RequireRole restricts an authenticated request to the given roles.
// Assumes Auth() has already injected claims into context. Failing the
// role check is always a 403: the caller is known, just not allowed.
func RequireRole(writeErr WriteErrFunc, allowed ...domain.Role) func(http.Handler) http.Handler {
	names := make([]string, len(allowed))
	for i, r := range allowed {
		names[i] = string(r)
	}
	allowedList := strings.Join(names, ",")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				// Middleware ordering issue (Auth not applied) or context missing
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			for _, role := range allowed {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeErr(w, r, domain.ErrInsufficientRole(allowedList))
		})
	}
}
