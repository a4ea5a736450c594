package validate

import (
	"errors"
	"testing"
)

func TestPassword(t *testing.T) {
	if err := Password("Sup3r-Secure-Pass!"); err != nil {
		t.Errorf("expected a strong password to pass, got: %s", err)
	}
	if err := Password("short"); !errors.Is(err, ErrorStringTooShort) {
		t.Errorf("expected a short password to fail with ErrorStringTooShort, got: %s", err)
	}
	if err := Password("alllowercase1234!"); !errors.Is(err, ErrorNoUppercase) {
		t.Errorf("expected a lowercase-only password to fail with ErrorNoUppercase, got: %s", err)
	}
	if err := Password("NoSymbolsHere1234"); !errors.Is(err, ErrorNoSymbol) {
		t.Errorf("expected a symbol-less password to fail with ErrorNoSymbol, got: %s", err)
	}
}

func TestEmail(t *testing.T) {
	if err := Email("rider@example.com"); err != nil {
		t.Errorf("expected a plain email to pass, got: %s", err)
	}
	if err := Email("rider+alias@example.com"); !errors.Is(err, ErrorEmailAliasesNotAllowed) {
		t.Errorf("expected an aliased email to fail, got: %s", err)
	}
	if err := Email("a@b"); !errors.Is(err, ErrorEmailDomainInvalid) {
		t.Errorf("expected a tld-less domain to fail, got: %s", err)
	}
	if err := Email("no-at-sign.example.com"); !errors.Is(err, ErrorEmailInvalidAt) {
		t.Errorf("expected an at-less address to fail, got: %s", err)
	}
}

func TestSlug(t *testing.T) {
	if err := Slug("tor-browser"); err != nil {
		t.Errorf("expected a dashed slug to pass, got: %s", err)
	}
	if err := Slug("Tor Browser"); err == nil {
		t.Error("expected an unslugified name to fail")
	}
	if err := Slug("-leading-dash"); !errors.Is(err, ErrorPrefixedWithNonLatinAlnum) {
		t.Errorf("expected a leading dash to fail, got: %s", err)
	}
}

func TestTotpToken(t *testing.T) {
	if err := TotpToken("123456"); err != nil {
		t.Errorf("expected a six digit token to pass, got: %s", err)
	}
	if err := TotpToken("12345"); !errors.Is(err, ErrorTotpTokenInvalidLength) {
		t.Errorf("expected a five digit token to fail, got: %s", err)
	}
	if err := TotpToken("12345a"); !errors.Is(err, ErrorTotpTokenNotNumeric) {
		t.Errorf("expected a non-numeric token to fail, got: %s", err)
	}
}
