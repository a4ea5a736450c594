package auth

import (
	"strings"
	"testing"
	"time"
)

func TestTotpRoundtrip(t *testing.T) {
	secret, err := CreateTotpSeed("dontverifyme", "rider@example.com")
	if err != nil {
		t.Fatalf("failed to create totp seed: %s", err)
	}
	if secret == "" {
		t.Fatal("expected a non-empty secret")
	}

	token, err := GenerateTotpToken(secret, time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to generate totp token: %s", err)
	}
	if len(token) != 6 {
		t.Errorf("expected a 6 digit token, got '%s'", token)
	}

	isValid, err := ValidateTotpToken(secret, token)
	if err != nil {
		t.Fatalf("failed to validate totp token: %s", err)
	}
	if !isValid {
		t.Error("expected a freshly generated token to validate")
	}

	isValid, err = ValidateTotpToken(secret, "000000")
	if err != nil {
		t.Fatalf("failed to validate totp token: %s", err)
	}
	if isValid {
		t.Error("expected a bogus token to fail validation")
	}
}

func TestGetTotpUri(t *testing.T) {
	uri := GetTotpUri(GetTotpUriOpts{
		Issuer:    "dontverifyme",
		AccountId: "rider@example.com",
		Secret:    "abcdef123456",
	})
	if !strings.HasPrefix(uri, "otpauth://totp/") {
		t.Errorf("expected an otpauth uri, got '%s'", uri)
	}
	if !strings.Contains(uri, "secret=ABCDEF123456") {
		t.Errorf("expected the secret to be uppercased in uri '%s'", uri)
	}
	if !strings.Contains(uri, "issuer=dontverifyme") {
		t.Errorf("expected the issuer in uri '%s'", uri)
	}
}

func TestGetTotpQrCode(t *testing.T) {
	qr, err := GetTotpQrCode(GetTotpUriOpts{
		Issuer:    "dontverifyme",
		AccountId: "rider@example.com",
		Secret:    "abcdef123456",
	})
	if err != nil {
		t.Fatalf("failed to render qr code: %s", err)
	}
	if !strings.HasPrefix(qr, "data:image/png;base64,") {
		t.Errorf("expected a png data uri, got prefix '%.32s'", qr)
	}
}
