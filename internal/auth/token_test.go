package auth

import (
	"errors"
	"testing"

	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

func newTestTokens(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService([]byte("test-secret-test-secret-test-secret"))
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	return svc
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokens(t)
	token, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected principal 7, got %d", id)
	}
}

func TestTokenTamperedSignatureRejected(t *testing.T) {
	svc := newTestTokens(t)
	token, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}
	if _, err := svc.Verify(string(tampered)); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenWrongKeyRejected(t *testing.T) {
	svc := newTestTokens(t)
	other, err := NewTokenService([]byte("another-secret-another-secret-zz"))
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	token, err := other.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	svc := newTestTokens(t)
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, shared.ErrInvalidToken) {
			t.Fatalf("verify(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}
