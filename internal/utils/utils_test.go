package utils

import (
	"testing"

	"github.com/ppsociety/membership-backend/internal/config"
)

func jwtConfig(secret string) *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: secret, ExpiresIn: 3600}}
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := jwtConfig("test-secret")

	token, err := GenerateJWT("64f1b2c3d4e5f67890123456", "ada@example.com", "member", cfg)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token, cfg)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims["sub"] != "64f1b2c3d4e5f67890123456" {
		t.Errorf("sub = %v", claims["sub"])
	}
	if claims["email"] != "ada@example.com" {
		t.Errorf("email = %v", claims["email"])
	}
	if claims["role"] != "member" {
		t.Errorf("role = %v", claims["role"])
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("64f1b2c3d4e5f67890123456", "ada@example.com", "member", jwtConfig("secret-a"))
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(token, jwtConfig("secret-b")); err == nil {
		t.Error("ValidateJWT accepted a token signed with a different secret")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: -60}}

	token, err := GenerateJWT("64f1b2c3d4e5f67890123456", "ada@example.com", "member", cfg)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(token, cfg); err == nil {
		t.Error("ValidateJWT accepted an expired token")
	}
}

func TestValidateJWTGarbage(t *testing.T) {
	if _, err := ValidateJWT("not-a-token", jwtConfig("test-secret")); err == nil {
		t.Error("ValidateJWT accepted garbage input")
	}
}
