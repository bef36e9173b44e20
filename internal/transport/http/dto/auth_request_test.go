package dto

import (
	"testing"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

func validStudentRegister() RegisterRequest {
	return RegisterRequest{
		Email:    "ana@x.cl",
		Password: "secreto",
		Name:     "Ana",
		Role:     "student",
		School:   "Liceo 1",
		Grade:    "8B",
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid student", func(t *testing.T) {
		t.Parallel()
		r := validStudentRegister()
		if err := r.Validate(); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("trims email", func(t *testing.T) {
		t.Parallel()
		r := validStudentRegister()
		r.Email = "  ana@x.cl  "
		if err := r.Validate(); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
		if r.Email != "ana@x.cl" {
			t.Fatalf("email not trimmed: %q", r.Email)
		}
	})

	t.Run("missing email", func(t *testing.T) {
		t.Parallel()
		r := validStudentRegister()
		r.Email = ""
		requireCode(t, r.Validate(), "missing_field")
	})

	t.Run("malformed email", func(t *testing.T) {
		t.Parallel()
		r := validStudentRegister()
		r.Email = "not-an-email"
		requireCode(t, r.Validate(), "invalid_field")
	})

	t.Run("short password", func(t *testing.T) {
		t.Parallel()
		r := validStudentRegister()
		r.Password = "corta"
		requireCode(t, r.Validate(), "weak_password")
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()
		r := validStudentRegister()
		r.Role = "wizard"
		requireCode(t, r.Validate(), "invalid_role")
	})

	t.Run("teacher needs school", func(t *testing.T) {
		t.Parallel()
		r := RegisterRequest{Email: "t@x.cl", Password: "secreto", Name: "T", Role: "teacher"}
		requireCode(t, r.Validate(), "missing_field")
	})

	t.Run("tutor needs relationship", func(t *testing.T) {
		t.Parallel()
		r := RegisterRequest{Email: "t@x.cl", Password: "secreto", Name: "T", Role: "tutor"}
		requireCode(t, r.Validate(), "missing_field")
	})

	t.Run("student needs grade", func(t *testing.T) {
		t.Parallel()
		r := validStudentRegister()
		r.Grade = ""
		requireCode(t, r.Validate(), "missing_field")
	})

	t.Run("admin needs no extension fields", func(t *testing.T) {
		t.Parallel()
		r := RegisterRequest{Email: "a@x.cl", Password: "secreto", Name: "A", Role: "admin"}
		if err := r.Validate(); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})
}

func TestLoginRequest_Validate(t *testing.T) {
	t.Parallel()

	r := LoginRequest{Email: "a@x.cl", Password: "x"}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	r = LoginRequest{Password: "x"}
	requireCode(t, r.Validate(), "missing_field")

	r = LoginRequest{Email: "a@x.cl"}
	requireCode(t, r.Validate(), "missing_field")
}

func TestPasswordChangeRequest_Validate(t *testing.T) {
	t.Parallel()

	r := PasswordChangeRequest{CurrentPassword: "vieja1", NewPassword: "nueva123"}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	r = PasswordChangeRequest{NewPassword: "nueva123"}
	requireCode(t, r.Validate(), "missing_field")

	r = PasswordChangeRequest{CurrentPassword: "vieja1", NewPassword: "corta"}
	requireCode(t, r.Validate(), "weak_password")
}
