package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/application/auth"
	"github.com/MaxMolina1975/amistapp/services/identity-service/internal/domain"
)

func testClaims() auth.TokenClaims {
	return auth.TokenClaims{
		UserID: 42,
		Email:  "ana@x.cl",
		Role:   domain.RoleTeacher,
		Name:   "Ana",
	}
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

func TestJWT_RoundTrip(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("test-secret", "identity-test")

	tok, err := s.Sign(testClaims(), time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.UserID != 42 || got.Email != "ana@x.cl" || got.Role != domain.RoleTeacher || got.Name != "Ana" {
		t.Fatalf("claims not preserved: %+v", got)
	}
	if got.Exp.IsZero() || time.Until(got.Exp) > time.Hour {
		t.Fatalf("unexpected expiry: %v", got.Exp)
	}
}

func TestJWT_Expired(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("test-secret", "identity-test")
	tok, err := s.Sign(testClaims(), -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = s.Verify(tok)
	requireCode(t, err, "token_expired")
}

func TestJWT_WrongSecret(t *testing.T) {
	t.Parallel()

	a := NewJWTSigner("secret-a", "identity-test")
	b := NewJWTSigner("secret-b", "identity-test")

	tok, err := a.Sign(testClaims(), time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = b.Verify(tok)
	requireCode(t, err, "token_invalid")
}

func TestJWT_Garbage(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("test-secret", "identity-test")
	_, err := s.Verify("not.a.token")
	requireCode(t, err, "token_invalid")
}

func TestJWT_RejectsUnsignedAlg(t *testing.T) {
	t.Parallel()

	sc := sessionClaims{
		Email: "ana@x.cl",
		Role:  "teacher",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, sc)
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	s := NewJWTSigner("test-secret", "identity-test")
	_, err = s.Verify(signed)
	requireCode(t, err, "token_invalid")
}

func TestJWT_NonNumericSubject(t *testing.T) {
	t.Parallel()

	sc := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-number",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sc).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	s := NewJWTSigner("test-secret", "identity-test")
	_, err = s.Verify(signed)
	requireCode(t, err, "token_invalid")
}
