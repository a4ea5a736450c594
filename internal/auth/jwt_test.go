package auth

import (
	"testing"
	"time"
)

func TestJwtRoundtrip(t *testing.T) {
	token, err := GenerateJwt(GenerateJwtOpts{
		Audience: "api",
		Id:       "session-id",
		Issuer:   "dontverifyme/controller",
		Secret:   "test-secret",
		Subject:  "web",
		Ttl:      time.Minute,
		UserId:   "user-id",
		Username: "rider@example.com",
	})
	if err != nil {
		t.Fatalf("failed to generate jwt: %s", err)
	}

	claims, err := ValidateJwt("test-secret", token)
	if err != nil {
		t.Fatalf("failed to validate jwt: %s", err)
	}
	if claims.UserID != "user-id" {
		t.Errorf("expected userId 'user-id', got '%s'", claims.UserID)
	}
	if claims.Username != "rider@example.com" {
		t.Errorf("expected username 'rider@example.com', got '%s'", claims.Username)
	}
	if claims.ID != "session-id" {
		t.Errorf("expected id 'session-id', got '%s'", claims.ID)
	}
}

func TestJwtWrongSecret(t *testing.T) {
	token, err := GenerateJwt(GenerateJwtOpts{
		Id:     "session-id",
		Secret: "test-secret",
		Ttl:    time.Minute,
		UserId: "user-id",
	})
	if err != nil {
		t.Fatalf("failed to generate jwt: %s", err)
	}
	if _, err := ValidateJwt("other-secret", token); err == nil {
		t.Error("expected validation with the wrong secret to fail")
	}
}

func TestJwtExpired(t *testing.T) {
	token, err := GenerateJwt(GenerateJwtOpts{
		Id:     "session-id",
		Secret: "test-secret",
		Ttl:    -time.Minute,
		UserId: "user-id",
	})
	if err != nil {
		t.Fatalf("failed to generate jwt: %s", err)
	}
	if _, err := ValidateJwt("test-secret", token); err == nil {
		t.Error("expected validation of an expired token to fail")
	}
}
