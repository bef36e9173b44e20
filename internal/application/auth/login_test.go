package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := newTestService(repo)
	u := seedUser(t, repo, "ana@x.cl", "secreto", domain.RoleTeacher,
		domain.ExtensionFields{School: "Liceo 1", Subjects: "historia"})

	res, err := svc.Login(context.Background(), "ana@x.cl", "secreto")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if res.Profile.User.ID != u.ID {
		t.Fatalf("wrong user: %+v", res.Profile.User)
	}
	if res.Profile.Teacher == nil || res.Profile.Teacher.School != "Liceo 1" {
		t.Fatalf("expected teacher extension, got %+v", res.Profile.Teacher)
	}
	if res.Token == "" {
		t.Fatalf("expected a session token")
	}
}

func TestLogin_UnknownEmailAndWrongPasswordLookTheSame(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := newTestService(repo)
	seedUser(t, repo, "ana@x.cl", "secreto", domain.RoleStudent, domain.ExtensionFields{School: "L"})

	_, errUnknown := svc.Login(context.Background(), "nadie@x.cl", "secreto")
	_, errWrongPw := svc.Login(context.Background(), "ana@x.cl", "equivocada")

	requireCode(t, errUnknown, "invalid_credentials")
	requireCode(t, errWrongPw, "invalid_credentials")
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("failure modes must be indistinguishable: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestLogin_EmptyInputs(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo())

	_, err := svc.Login(context.Background(), "", "pw")
	requireCode(t, err, "invalid_credentials")

	_, err = svc.Login(context.Background(), "a@b.cl", "")
	requireCode(t, err, "invalid_credentials")
}

// A store outage on the email lookup must not be dressed up as a failed
// login: only not-found hides behind invalid credentials.
type unavailableRepo struct {
	*fakeRepo
}

func (f *unavailableRepo) GetByEmail(context.Context, string) (domain.User, error) {
	return domain.User{}, domain.ErrDBUnavailable(errors.New("connection refused"))
}

func TestLogin_StoreOutageSurfaces(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	seedUser(t, repo, "ana@x.cl", "secreto", domain.RoleStudent, domain.ExtensionFields{School: "L"})
	svc := newTestService(repo)
	svc.users = &unavailableRepo{fakeRepo: repo}

	_, err := svc.Login(context.Background(), "ana@x.cl", "secreto")
	requireCode(t, err, "db_unavailable")
}

func TestLogin_SuspendedAccount(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := newTestService(repo)
	u := seedUser(t, repo, "sus@x.cl", "secreto", domain.RoleStudent, domain.ExtensionFields{School: "L"})
	u.Status = domain.StatusSuspended
	repo.users[u.ID] = u

	_, err := svc.Login(context.Background(), "sus@x.cl", "secreto")
	requireCode(t, err, "account_suspended")
}

func TestLogin_SuspensionCheckedAfterPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := newTestService(repo)
	u := seedUser(t, repo, "sus@x.cl", "secreto", domain.RoleStudent, domain.ExtensionFields{School: "L"})
	u.Status = domain.StatusSuspended
	repo.users[u.ID] = u

	// a wrong password never reveals the suspension
	_, err := svc.Login(context.Background(), "sus@x.cl", "equivocada")
	requireCode(t, err, "invalid_credentials")
}
