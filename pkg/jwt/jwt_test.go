package jwt

import (
	"errors"
	"testing"
	"time"

	"acadportal/backend/config"
)

func testManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-at-least-16-chars",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func TestManager_GenerateAndParse(t *testing.T) {
	m := testManager(15 * time.Minute)

	token, err := m.GenerateAccessToken("user-001", "faculty")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-001" {
		t.Errorf("UserID = %s, want user-001", claims.UserID)
	}
	if claims.Role != "faculty" {
		t.Errorf("Role = %s, want faculty", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %s, want access", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("expected a jti")
	}
}

func TestManager_RefreshTokenType(t *testing.T) {
	m := testManager(15 * time.Minute)

	token, err := m.GenerateRefreshToken("user-001", "admin")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType = %s, want refresh", claims.TokenType)
	}
}

func TestManager_ExpiredToken(t *testing.T) {
	m := testManager(-1 * time.Minute)

	token, err := m.GenerateAccessToken("user-001", "faculty")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestManager_WrongSecret(t *testing.T) {
	m := testManager(15 * time.Minute)
	other := NewManager(&config.AuthConfig{
		JWTSecret:       "a-different-secret-entirely",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	token, err := m.GenerateAccessToken("user-001", "faculty")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
