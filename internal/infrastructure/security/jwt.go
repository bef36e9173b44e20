package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/application/auth"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

// JWTSigner mints and verifies stateless HS256 session tokens. The secret
// is process configuration injected at construction; there is no
// per-token state and no revocation.
type JWTSigner struct {
	secret []byte
	issuer string
}

func NewJWTSigner(secret string, issuer string) *JWTSigner {
	return &JWTSigner{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// sessionClaims carries the minimum needed to authorize a request. No
// role-extension data is embedded: tokens stay small and joined data
// cannot go stale inside them.
type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) Sign(claims auth.TokenClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	sc := sessionClaims{
		Email: claims.Email,
		Role:  string(claims.Role),
		Name:  claims.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(claims.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sc)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

func (s *JWTSigner) Verify(token string) (auth.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.TokenClaims{}, domain.ErrTokenExpired()
		}
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}

	sc, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}

	userID, err := strconv.ParseInt(sc.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return auth.TokenClaims{}, domain.ErrTokenInvalid()
	}

	exp := time.Time{}
	if sc.ExpiresAt != nil {
		exp = sc.ExpiresAt.Time
	}

	return auth.TokenClaims{
		UserID: userID,
		Email:  sc.Email,
		Role:   domain.Role(sc.Role),
		Name:   sc.Name,
		Exp:    exp,
	}, nil
}
