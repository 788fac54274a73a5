package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(16)
	if err != nil {
		t.Fatalf("GenerateSecureToken() error = %v", err)
	}
	if len(a) != 32 {
		t.Errorf("len = %d, want 32 hex chars", len(a))
	}
	b, _ := GenerateSecureToken(16)
	if a == b {
		t.Error("two tokens are identical")
	}
}

func TestSessionToken(t *testing.T) {
	const secret = "0123456789abcdef"

	token, err := IssueSessionToken(secret, "editor-ui", time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken() error = %v", err)
	}

	t.Run("round trips", func(t *testing.T) {
		claims, err := ParseSessionToken(secret, token)
		if err != nil {
			t.Fatalf("ParseSessionToken() error = %v", err)
		}
		if claims.Client != "editor-ui" || claims.Subject != "editor-ui" {
			t.Errorf("claims = %+v, want client editor-ui", claims)
		}
	})

	t.Run("rejects another secret", func(t *testing.T) {
		if _, err := ParseSessionToken("another-secret-value", token); !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			t.Errorf("error = %v, want ErrTokenSignatureInvalid", err)
		}
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expired, err := IssueSessionToken(secret, "editor-ui", -time.Minute)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := ParseSessionToken(secret, expired); !errors.Is(err, jwt.ErrTokenExpired) {
			t.Errorf("error = %v, want ErrTokenExpired", err)
		}
	})

	t.Run("empty secret", func(t *testing.T) {
		if _, err := IssueSessionToken("", "x", time.Hour); err == nil {
			t.Error("expected error")
		}
	})
}
