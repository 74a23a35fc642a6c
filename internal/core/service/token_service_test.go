package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cryptodata/crypto-data-api/internal/core/domain"
)

func newTestTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()
	svc, err := NewTokenService(secret, "HS256", time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestTokenService_RequiresSecret(t *testing.T) {
	if _, err := NewTokenService("", "HS256", time.Hour, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestTokenService_RejectsUnknownAlgorithm(t *testing.T) {
	if _, err := NewTokenService("secret", "RS256", time.Hour, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for non-HMAC algorithm")
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService(t, "secret")

	token, err := svc.IssueWithTTL("alice", time.Minute)
	if err != nil {
		t.Fatalf("IssueWithTTL: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	subject, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("expected subject alice, got %q", subject)
	}
}

func TestTokenService_ZeroTTLRejectedImmediately(t *testing.T) {
	svc := newTestTokenService(t, "secret")

	token, err := svc.IssueWithTTL("alice", 0)
	if err != nil {
		t.Fatalf("IssueWithTTL: %v", err)
	}
	if _, err := svc.Verify(token); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated for zero-ttl token, got %v", err)
	}
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	svc := newTestTokenService(t, "secret")

	token, err := svc.IssueWithTTL("alice", time.Millisecond)
	if err != nil {
		t.Fatalf("IssueWithTTL: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := svc.Verify(token); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestTokenService_WrongKeyRejected(t *testing.T) {
	issuer := newTestTokenService(t, "key-one")
	verifier := newTestTokenService(t, "key-two")

	token, err := issuer.IssueWithTTL("alice", time.Minute)
	if err != nil {
		t.Fatalf("IssueWithTTL: %v", err)
	}
	if _, err := verifier.Verify(token); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated for foreign signature, got %v", err)
	}
}

func TestTokenService_MalformedTokenRejected(t *testing.T) {
	svc := newTestTokenService(t, "secret")
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(token); err != domain.ErrUnauthenticated {
			t.Fatalf("token %q: expected ErrUnauthenticated, got %v", token, err)
		}
	}
}

func TestTokenService_DefaultTTLApplied(t *testing.T) {
	svc := newTestTokenService(t, "secret")

	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token with default ttl should verify: %v", err)
	}
}
