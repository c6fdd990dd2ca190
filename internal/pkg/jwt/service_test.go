package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)

	userID := uuid.New()
	tok, err := svc.GenerateToken(userID, true, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id mismatch: %v", claims.UserID)
	}
	if !claims.EmailVerified || claims.Admin {
		t.Fatalf("flags mismatch: %+v", claims)
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	tok, err := svc.GenerateToken(uuid.New(), true, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("secret", time.Hour).GenerateToken(uuid.New(), false, true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := NewHMACService("other", time.Hour).ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_Garbage(t *testing.T) {
	if _, err := NewHMACService("secret", time.Hour).ValidateToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
