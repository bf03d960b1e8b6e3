package services

import (
	"strings"
	"testing"
	"time"
)

func TestResetTokenIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewResetTokenService("super-secret", time.Hour)

	tok, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	userID, ok := svc.Verify(tok)
	if !ok {
		t.Fatalf("expected token to verify")
	}
	if userID != 42 {
		t.Fatalf("userID mismatch: got %d want 42", userID)
	}
}

func TestResetTokenExpired(t *testing.T) {
	t.Parallel()

	svc := NewResetTokenService("super-secret", time.Hour)
	expired := &ResetTokenService{secret: []byte("super-secret"), ttl: -1 * time.Second}

	tok, err := expired.Issue(42)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, ok := svc.Verify(tok); ok {
		t.Fatalf("expected expired token to be rejected, not resolve to a user")
	}
}

func TestResetTokenWrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewResetTokenService("right-secret", time.Hour)
	verifier := NewResetTokenService("wrong-secret", time.Hour)

	tok, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, ok := verifier.Verify(tok); ok {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestResetTokenTampered(t *testing.T) {
	t.Parallel()

	svc := NewResetTokenService("super-secret", time.Hour)

	tok, err := svc.Issue(1)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip one byte in the payload segment
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if userID, ok := svc.Verify(tampered); ok {
		t.Fatalf("expected tampered token to be rejected, resolved to user %d", userID)
	}
}

func TestResetTokenMalformed(t *testing.T) {
	t.Parallel()

	svc := NewResetTokenService("super-secret", time.Hour)
	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		if _, ok := svc.Verify(tok); ok {
			t.Fatalf("expected malformed token %q to be rejected", tok)
		}
	}
}

func TestResetTokenDefaultTTL(t *testing.T) {
	t.Parallel()

	svc := NewResetTokenService("s", 0)
	if svc.ttl != DefaultResetTokenTTL {
		t.Fatalf("expected default TTL %v, got %v", DefaultResetTokenTTL, svc.ttl)
	}
}
