package auth

import (
	"context"
	"strings"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
	Ext      domain.ExtensionFields
}

// Register creates the user row and its role extension atomically, then
// issues a session token. Duplicate emails surface as the conflict error
// from the repo; no partial user is ever visible.
func (s *Service) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return AuthResult{}, domain.ErrInvalidField("email/password", "empty")
	}
	if !domain.IsValidRole(string(in.Role)) {
		return AuthResult{}, domain.ErrInvalidRole(string(in.Role))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         in.Role,
		Status:       domain.StatusActive,
	}

	created, err := s.users.Create(ctx, u, in.Ext)
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return AuthResult{}, err
	}

	// The extension row was written in the same transaction, so the
	// profile can be assembled from the input without a second read.
	return AuthResult{
		Profile:   profileFromExt(created, in.Ext),
		Token:     token,
		ExpiresIn: int64(s.accessTTL.Seconds()),
	}, nil
}

func profileFromExt(u domain.User, ext domain.ExtensionFields) domain.Profile {
	p := domain.Profile{User: u}
	switch u.Role {
	case domain.RoleTeacher:
		p.Teacher = &domain.TeacherInfo{School: ext.School, Subjects: ext.Subjects}
	case domain.RoleTutor:
		p.Tutor = &domain.TutorInfo{Relationship: ext.Relationship, Phone: ext.Phone}
	case domain.RoleStudent:
		p.Student = &domain.StudentInfo{School: ext.School, Grade: ext.Grade}
	}
	return p
}
