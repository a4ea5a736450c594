package dvm

import "errors"

var (
	ErrorAuthRequired       = errors.New("auth_required")
	ErrorChallengeExpired   = errors.New("challenge_expired")
	ErrorDuplicateEntry     = errors.New("duplicate_entry")
	ErrorEmailExists        = errors.New("email_exists")
	ErrorEmailNotVerified   = errors.New("email_not_verified")
	ErrorInvalidCredentials = errors.New("credentials_authentication_failed")
	ErrorInvalidInput       = errors.New("invalid_input")
	ErrorMfaLimitReached    = errors.New("mfa_limit_reached")
	ErrorMfaRequired        = errors.New("mfa_required")
	ErrorMfaTokenInvalid    = errors.New("mfa_token_invalid")
	ErrorNoFactorsEnrolled  = errors.New("no_factors_enrolled")
	ErrorNotFound           = errors.New("not_found")
	ErrorUnknown            = errors.New("unknown_error")
)
