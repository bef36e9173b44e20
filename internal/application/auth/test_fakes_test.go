package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

// In-memory fakes for the service ports. They keep the same transactional
// shape as the real repo: Create writes user and extension together.

type fakeRepo struct {
	users    map[int64]domain.User
	teachers map[int64]domain.TeacherInfo
	tutors   map[int64]domain.TutorInfo
	students map[int64]domain.StudentInfo
	nextID   int64

	createErr error
	listErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    map[int64]domain.User{},
		teachers: map[int64]domain.TeacherInfo{},
		tutors:   map[int64]domain.TutorInfo{},
		students: map[int64]domain.StudentInfo{},
	}
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeRepo) Create(_ context.Context, u domain.User, ext domain.ExtensionFields) (domain.User, error) {
	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return domain.User{}, domain.ErrEmailAlreadyRegistered()
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u

	switch u.Role {
	case domain.RoleTeacher:
		f.teachers[u.ID] = domain.TeacherInfo{School: ext.School, Subjects: ext.Subjects}
	case domain.RoleTutor:
		f.tutors[u.ID] = domain.TutorInfo{Relationship: ext.Relationship, Phone: ext.Phone}
	case domain.RoleStudent:
		f.students[u.ID] = domain.StudentInfo{School: ext.School, Grade: ext.Grade}
	}
	return u, nil
}

func (f *fakeRepo) List(_ context.Context) ([]domain.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.User
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdatePasswordHash(_ context.Context, userID int64, newHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	f.users[userID] = u
	return nil
}

func (f *fakeRepo) UpdateProfile(_ context.Context, userID int64, role domain.Role, name string, ext domain.ExtensionFields) error {
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.Name = name
	f.users[userID] = u

	switch role {
	case domain.RoleTeacher:
		f.teachers[userID] = domain.TeacherInfo{School: ext.School, Subjects: ext.Subjects}
	case domain.RoleTutor:
		f.tutors[userID] = domain.TutorInfo{Relationship: ext.Relationship, Phone: ext.Phone}
	case domain.RoleStudent:
		info := f.students[userID]
		info.School = ext.School
		info.Grade = ext.Grade
		f.students[userID] = info
	}
	return nil
}

func (f *fakeRepo) GetTeacherInfo(_ context.Context, userID int64) (domain.TeacherInfo, error) {
	info, ok := f.teachers[userID]
	if !ok {
		return domain.TeacherInfo{}, domain.ErrExtensionNotFound(string(domain.RoleTeacher))
	}
	return info, nil
}

func (f *fakeRepo) GetTutorInfo(_ context.Context, userID int64) (domain.TutorInfo, error) {
	info, ok := f.tutors[userID]
	if !ok {
		return domain.TutorInfo{}, domain.ErrExtensionNotFound(string(domain.RoleTutor))
	}
	return info, nil
}

func (f *fakeRepo) GetStudentInfo(_ context.Context, userID int64) (domain.StudentInfo, error) {
	info, ok := f.students[userID]
	if !ok {
		return domain.StudentInfo{}, domain.ErrExtensionNotFound(string(domain.RoleStudent))
	}
	return info, nil
}

// fakeHasher makes hashes inspectable: "h:" + password.
type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "h:" + password, nil
}

func (f *fakeHasher) Compare(hash string, password string) error {
	if hash == "h:"+password {
		return nil
	}
	return errors.New("hash mismatch")
}

type fakeSigner struct {
	signErr error
}

func (f *fakeSigner) Sign(claims TokenClaims, _ time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return fmt.Sprintf("tok-%d-%s", claims.UserID, claims.Role), nil
}

func (f *fakeSigner) Verify(token string) (TokenClaims, error) {
	return TokenClaims{}, errors.New("not used")
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, &fakeHasher{}, &fakeSigner{}, zerolog.Nop(), Config{AccessTTL: time.Hour})
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

// seedUser registers directly through the fake, bypassing the service.
func seedUser(t *testing.T, repo *fakeRepo, email, password string, role domain.Role, ext domain.ExtensionFields) domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), domain.User{
		Email:        email,
		PasswordHash: "h:" + password,
		Name:         "Seeded",
		Role:         role,
		Status:       domain.StatusActive,
	}, ext)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}
