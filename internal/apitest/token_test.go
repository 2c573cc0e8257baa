package apitest

import (
	"testing"
	"time"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	now := time.Now()

	tok, err := generateToken(7, secret, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("generateToken error: %v", err)
	}

	got, err := userIDFromToken(tok, secret, now)
	if err != nil {
		t.Fatalf("userIDFromToken error: %v", err)
	}
	if got != 7 {
		t.Fatalf("userID mismatch: got %d want 7", got)
	}
}

func TestUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	now := time.Now()

	tok, err := generateToken(1, secret, now.Add(-time.Minute))
	if err != nil {
		t.Fatalf("generateToken error: %v", err)
	}

	if _, err := userIDFromToken(tok, secret, now); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := generateToken(2, []byte("right-secret"), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("generateToken error: %v", err)
	}

	if _, err := userIDFromToken(tok, []byte("wrong-secret"), time.Now()); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestUserIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := userIDFromToken("not.a.jwt", []byte("k"), time.Now()); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
