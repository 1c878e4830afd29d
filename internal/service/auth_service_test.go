package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lanexam/lanexam-backend/internal/config"
	"github.com/lanexam/lanexam-backend/internal/model"
)

func testAuthService(expiry time.Duration) *AuthService {
	return &AuthService{
		cfg: &config.Config{
			TokenSecret: "test-secret",
			TokenExpiry: expiry,
			BcryptCost:  4, // Minimum cost keeps the tests fast.
		},
	}
}

func TestTokenRoundtrip(t *testing.T) {
	svc := testAuthService(time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, model.RoleTeacher)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != model.RoleTeacher {
		t.Fatalf("expected role teacher, got %s", claims.Role)
	}
}

func TestTokenExpired(t *testing.T) {
	svc := testAuthService(-time.Minute)

	token, err := svc.GenerateToken(uuid.New(), model.RoleStudent)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, err = svc.ValidateToken(token)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired token error, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := testAuthService(time.Hour)
	token, err := issuer.GenerateToken(uuid.New(), model.RoleStudent)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	verifier := testAuthService(time.Hour)
	verifier.cfg.TokenSecret = "different-secret"
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestTokenGarbage(t *testing.T) {
	svc := testAuthService(time.Hour)
	if _, err := svc.ValidateToken("not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestPasswordRoundtrip(t *testing.T) {
	svc := testAuthService(time.Hour)

	hash, err := svc.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := svc.CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Fatalf("expected matching password, got %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
