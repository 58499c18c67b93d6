package main

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) (*Auth, *DB) {
	t.Helper()
	old := bcryptCost
	bcryptCost = bcrypt.MinCost
	t.Cleanup(func() { bcryptCost = old })
	db := openTestDB(t)
	return NewAuth(db), db
}

func TestRegisterAndLogin(t *testing.T) {
	a, _ := newTestAuth(t)

	id, token, err := a.Register("  pilot ", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	pid, name, err := a.ValidateToken(token)
	if err != nil || pid != id || name != "pilot" {
		t.Errorf("token round trip: %d %q %v", pid, name, err)
	}

	lid, _, err := a.Login("pilot", "secret", "1.2.3.4")
	if err != nil || lid != id {
		t.Errorf("login: %d %v", lid, err)
	}
	if _, _, err := a.Login("pilot", "wrong", "1.2.3.4"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("expected bad credentials, got %v", err)
	}
	if _, _, err := a.Login("ghost", "secret", "1.2.3.4"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("unknown user should look like bad credentials, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	a, _ := newTestAuth(t)
	if _, _, err := a.Register("x", "secret"); !errors.Is(err, ErrInvalidUsername) {
		t.Errorf("expected invalid username, got %v", err)
	}
	if _, _, err := a.Register("pilot", "abc"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected weak password, got %v", err)
	}
	a.Register("pilot", "secret")
	if _, _, err := a.Register("pilot", "other1"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected taken, got %v", err)
	}
}

func TestLoginRateLimited(t *testing.T) {
	a, _ := newTestAuth(t)
	for i := 0; i < maxLoginAttempts; i++ {
		a.Login("ghost", "secret", "9.9.9.9")
	}
	if _, _, err := a.Login("ghost", "secret", "9.9.9.9"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected rate limit, got %v", err)
	}
	if _, _, err := a.Login("ghost", "secret", "8.8.8.8"); errors.Is(err, ErrRateLimited) {
		t.Error("limit should be per IP")
	}
}

func TestValidateTokenRejects(t *testing.T) {
	a, _ := newTestAuth(t)
	_, token, _ := a.Register("pilot", "secret")

	if _, _, err := a.ValidateToken(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token: %v", err)
	}

	other := &Auth{jwtSecret: []byte("another-secret-another-secret-32")}
	forged, _ := other.generateToken(1, "pilot")
	if _, _, err := a.ValidateToken(forged); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign signature: %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"pid": 1, "usr": "pilot"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, _, err := a.ValidateToken(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("alg none should be rejected: %v", err)
	}
}

func TestSecretPersistsAcrossRestarts(t *testing.T) {
	a, db := newTestAuth(t)
	_, token, err := a.Register("pilot", "secret")
	if err != nil {
		t.Fatal(err)
	}

	again := NewAuth(db)
	if _, name, err := again.ValidateToken(token); err != nil || name != "pilot" {
		t.Errorf("token should survive a restart: %q %v", name, err)
	}
}
