package auth

import (
	"context"
	"time"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for users and their role extensions.
Only describes WHAT the identity service needs, not HOW it's stored.
Create and UpdateProfile are transactional in the implementation: the
user row and the extension row change together or not at all.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, u domain.User, ext domain.ExtensionFields) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)

	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error
	UpdateProfile(ctx context.Context, userID int64, role domain.Role, name string, ext domain.ExtensionFields) error

	GetTeacherInfo(ctx context.Context, userID int64) (domain.TeacherInfo, error)
	GetTutorInfo(ctx context.Context, userID int64) (domain.TutorInfo, error)
	GetStudentInfo(ctx context.Context, userID int64) (domain.StudentInfo, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT).
Used by service + auth middleware.
*/
type TokenClaims struct {
	UserID int64
	Email  string
	Role   domain.Role
	Name   string
	Exp    time.Time
}

type TokenSigner interface {
	Sign(claims TokenClaims, ttl time.Duration) (string, error)
	Verify(token string) (TokenClaims, error)
}
