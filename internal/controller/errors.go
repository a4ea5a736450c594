package controller

import "errors"

var (
	ErrorAuthRequired        = errors.New("auth_required")
	ErrorChallengeExpired    = errors.New("challenge_expired")
	ErrorDatabaseIssue       = errors.New("database_issue")
	ErrorEmailExists         = errors.New("email_exists")
	ErrorGeneric             = errors.New("generic_error")
	ErrorInvalidInput        = errors.New("invalid_input")
	ErrorInvalidPassword     = errors.New("invalid_password")
	ErrorMfaLimitReached     = errors.New("mfa_limit_reached")
	ErrorMfaRequired         = errors.New("mfa_required")
	ErrorMfaTokenInvalid     = errors.New("mfa_token_invalid")
	ErrorNoFactorsEnrolled   = errors.New("no_factors_enrolled")
	ErrorNotFound            = errors.New("not_found")
	ErrorUnrecognisedMfaType = errors.New("unknown_mfa_type")

	ErrorMissingApiKeys            = errors.New("missing_api_keys")
	ErrorMissingDatabaseConnection = errors.New("missing_database_connection")
	ErrorMissingEmailConfig        = errors.New("missing_email_config")
	ErrorMissingQueueConnection    = errors.New("missing_queue_connection")
	ErrorMissingServiceLog         = errors.New("missing_service_log")
	ErrorInvalidPublicServerUrl    = errors.New("invalid_public_server_url")
)
