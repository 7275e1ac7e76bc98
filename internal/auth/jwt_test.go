package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func buildAuthenticator(tb testing.TB) *JWTAuthenticator {
	tb.Helper()
	return NewJWTAuthenticator("access-secret", "refresh-secret", "movies-server", "movies-server", time.Hour, 24*time.Hour)
}

func TestGenerateAndValidateTokens(t *testing.T) {
	a := buildAuthenticator(t)

	access, refresh, err := a.GenerateTokens(42, "admin")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty token pair")
	}

	token, err := a.ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if sub, _ := claims["sub"].(float64); int64(sub) != 42 {
		t.Fatalf("sub = %v, want 42", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "admin" {
		t.Fatalf("role = %v, want admin", claims["role"])
	}

	if _, err := a.ValidateRefreshToken(refresh); err != nil {
		t.Fatalf("validate refresh token: %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	a := buildAuthenticator(t)
	other := NewJWTAuthenticator("different", "different", "movies-server", "movies-server", time.Hour, 24*time.Hour)

	access, _, err := a.GenerateTokens(1, "user")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	if _, err := other.ValidateAccessToken(access); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	a := buildAuthenticator(t)

	access, refresh, err := a.GenerateTokens(7, "user")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	// The two token kinds are signed with different secrets.
	if _, err := a.ValidateRefreshToken(access); err == nil {
		t.Fatal("access token validated as refresh token")
	}
	if _, err := a.ValidateAccessToken(refresh); err == nil {
		t.Fatal("refresh token validated as access token")
	}
}
