package auth

import (
	"context"
	"errors"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

// Profile fetches the user and merges in its role extension row. A missing
// extension row is a data-integrity defect (registration writes both rows
// in one transaction), but callers get a profile with empty extension
// fields instead of an error; the defect is logged for operational
// follow-up.
func (s *Service) Profile(ctx context.Context, userID int64) (domain.Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	p := domain.Profile{User: u}

	switch u.Role {
	case domain.RoleTeacher:
		info, err := s.users.GetTeacherInfo(ctx, u.ID)
		if err != nil {
			if !s.degraded(ctx, u, err) {
				return domain.Profile{}, err
			}
		}
		p.Teacher = &info
	case domain.RoleTutor:
		info, err := s.users.GetTutorInfo(ctx, u.ID)
		if err != nil {
			if !s.degraded(ctx, u, err) {
				return domain.Profile{}, err
			}
		}
		p.Tutor = &info
	case domain.RoleStudent:
		info, err := s.users.GetStudentInfo(ctx, u.ID)
		if err != nil {
			if !s.degraded(ctx, u, err) {
				return domain.Profile{}, err
			}
		}
		p.Student = &info
	case domain.RoleAdmin:
		// admins carry no extension
	}

	return p, nil
}

// degraded reports whether err is a missing extension row, logging it when
// so. Store errors are not degradable and propagate.
func (s *Service) degraded(ctx context.Context, u domain.User, err error) bool {
	var de *domain.Error
	if !errors.As(err, &de) || de.Code != "role_extension_not_found" {
		return false
	}
	s.log.Warn().
		Int64("user_id", u.ID).
		Str("role", string(u.Role)).
		Msg("role extension row missing; serving profile with defaults")
	return true
}

// ListUsers returns every identity, for the admin console.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
