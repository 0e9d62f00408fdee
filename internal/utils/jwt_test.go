package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, "ORGANIZER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	if at.Token == "" {
		t.Fatal("NewAccessToken() returned empty token")
	}
	if remaining := time.Until(at.Exp); remaining < 14*time.Minute || remaining > 16*time.Minute {
		t.Errorf("expiry %v not around 15 minutes out", at.Exp)
	}

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("signed token does not verify: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "ORGANIZER" {
		t.Errorf("role = %v, want ORGANIZER", claims["role"])
	}
}

func TestNewRefreshToken(t *testing.T) {
	rt, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken() error = %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Errorf("raw token length = %d, want 96 hex chars", len(rt.Raw))
	}
	other, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken() error = %v", err)
	}
	if rt.Raw == other.Raw {
		t.Error("two refresh tokens should never collide")
	}
}

func TestHashRefreshRaw(t *testing.T) {
	h1 := HashRefreshRaw("abc")
	h2 := HashRefreshRaw("abc")
	if h1 != h2 {
		t.Error("hash must be deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
	if HashRefreshRaw("abd") == h1 {
		t.Error("different inputs should produce different hashes")
	}
}
