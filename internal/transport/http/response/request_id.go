package response

import (
	"net/http"

	appctx "github.com/MaxMolina1975/amistapp/services/identity-service/internal/pkg/context"
)

// RequestIDFromContext extracts the request id set by the request-id
// middleware, or "" when absent.
func RequestIDFromContext(r *http.Request) string {
	return appctx.GetRequestID(r.Context())
}
