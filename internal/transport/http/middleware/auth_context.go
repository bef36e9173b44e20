package middleware

import (
	"context"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/application/auth"
)

type ctxKey string

const ctxClaims ctxKey = "claims"

// Claims live only for the request's lifetime; nothing persists them.
func WithClaims(ctx context.Context, claims auth.TokenClaims) context.Context {
	return context.WithValue(ctx, ctxClaims, claims)
}

func ClaimsFromContext(ctx context.Context) (auth.TokenClaims, bool) {
	c, ok := ctx.Value(ctxClaims).(auth.TokenClaims)
	return c, ok && c.UserID > 0
}
