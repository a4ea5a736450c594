package auth

import (
	"strings"
	"testing"
)

func TestPasswordRoundtrip(t *testing.T) {
	encoded, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("failed to hash password: %s", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Errorf("expected an argon2id encoding, got '%s'", encoded)
	}
	if !ValidatePassword("correct horse battery staple", encoded) {
		t.Error("expected the original password to validate")
	}
	if ValidatePassword("incorrect horse", encoded) {
		t.Error("expected a wrong password to fail validation")
	}
}

func TestValidatePasswordMalformedEncoding(t *testing.T) {
	if ValidatePassword("anything", "not-an-encoded-hash") {
		t.Error("expected a malformed encoding to fail validation")
	}
}
