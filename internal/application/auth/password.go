package auth

import (
	"context"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if next == "" {
		return domain.ErrMissingField("new_password")
	}
	if len(next) < 6 {
		return domain.ErrWeakPassword("min length 6")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(u.PasswordHash, current); err != nil {
		return domain.ErrInvalidCredentials()
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return domain.ErrHashFailed(err)
	}

	return s.users.UpdatePasswordHash(ctx, userID, hash)
}

// UpdateProfile updates the display name and role-extension fields, then
// returns the freshly composed profile.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, name string, ext domain.ExtensionFields) (domain.Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	if name == "" {
		name = u.Name
	}

	if err := s.users.UpdateProfile(ctx, userID, u.Role, name, ext); err != nil {
		return domain.Profile{}, err
	}

	return s.Profile(ctx, userID)
}
