package token

import (
	"errors"
	"testing"
	"time"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:     "user123",
		Name:   "Alice",
		Email:  "alice@example.com",
		Role:   domain.RoleProjectManager,
		Status: domain.StatusActive,
	}
}

func TestCodec_IssueAndVerify(t *testing.T) {
	codec := NewCodec("access-secret", time.Hour)

	tok, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != "user123" || claims.Role != domain.RoleProjectManager {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Email != "alice@example.com" || claims.Name != "Alice" {
		t.Fatalf("unexpected identity claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", claims.ExpiresAt)
	}
	if claims.IssuedAt == nil {
		t.Fatalf("expected issued-at to be set")
	}
}

func TestCodec_Issue_NoSecret(t *testing.T) {
	codec := NewCodec("", time.Hour)
	if _, err := codec.Issue(testUser()); !errors.Is(err, ErrNoSigningSecret) {
		t.Fatalf("expected ErrNoSigningSecret, got %v", err)
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	codec := NewCodec("secret", -time.Minute)

	tok, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := codec.Verify(tok); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	issuer := NewCodec("secret-a", time.Hour)
	verifier := NewCodec("secret-b", time.Hour)

	tok, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(tok); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

// An access token must never verify as a refresh token: the two classes use
// distinct secrets even though the claim shape is identical.
func TestCodec_DistinctSecretsRejectCrossClass(t *testing.T) {
	access := NewCodec("access-secret", 15*time.Minute)
	refresh := NewCodec("refresh-secret", 24*time.Hour)

	accessTok, err := access.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := refresh.Verify(accessTok); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for cross-class token, got %v", err)
	}
}

func TestCodec_Verify_Malformed(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := codec.Verify(tok); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("token %q: expected ErrMalformedToken, got %v", tok, err)
		}
	}
}

func TestDecodeUnverified(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	tok, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := DecodeUnverified(tok)
	if err != nil {
		t.Fatalf("DecodeUnverified returned error: %v", err)
	}
	if claims.UserID != "user123" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// Works without the secret even on an expired token.
	expired := NewCodec("secret", -time.Minute)
	expTok, _ := expired.Issue(testUser())
	if _, err := DecodeUnverified(expTok); err != nil {
		t.Fatalf("DecodeUnverified on expired token: %v", err)
	}

	if _, err := DecodeUnverified("nonsense"); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}
