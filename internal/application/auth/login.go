package auth

import (
	"context"
	"strings"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

// Login authenticates a user and issues a session token.
// IMPORTANT: unknown email and wrong password must be indistinguishable to
// the caller (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials; store failures
		// must surface as-is so the transport layer reports them.
		if domain.Is(err, "user_not_found") {
			return AuthResult{}, domain.ErrInvalidCredentials()
		}
		return AuthResult{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	if u.Status == domain.StatusSuspended {
		return AuthResult{}, domain.ErrAccountSuspended()
	}

	profile, err := s.Profile(ctx, u.ID)
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.issueToken(u)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{
		Profile:   profile,
		Token:     token,
		ExpiresIn: int64(s.accessTTL.Seconds()),
	}, nil
}
