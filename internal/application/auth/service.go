package auth

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner

	accessTTL time.Duration
	log       zerolog.Logger
}

type Config struct {
	AccessTTL time.Duration
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner, log zerolog.Logger, cfg Config) *Service {
	ttl := cfg.AccessTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		users:     users,
		hasher:    hasher,
		signer:    signer,
		accessTTL: ttl,
		log:       log,
	}
}

// AuthResult is the common output of register and login.
type AuthResult struct {
	Profile domain.Profile
	Token   string
	// ExpiresIn is the token validity in seconds.
	ExpiresIn int64
}

func (s *Service) issueToken(u domain.User) (string, error) {
	return s.signer.Sign(TokenClaims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Name:   u.Name,
	}, s.accessTTL)
}
