package models

import "fmt"

var (
	ErrorChallengeExpired                = fmt.Errorf("challenge_expired")
	ErrorCredentialsAuthenticationFailed = fmt.Errorf("credentials_authentication_failed")
	ErrorDuplicateEntry                  = fmt.Errorf("duplicate_entry")
	ErrorMfaLimitReached                 = fmt.Errorf("mfa_limit_reached")
	ErrorNotFound                        = fmt.Errorf("not_found")
	ErrorUnknown                         = fmt.Errorf("unknown_error")
	ErrorUserEmailNotVerified            = fmt.Errorf("email_not_verified")

	ErrorDatabaseUndefined       = fmt.Errorf("database_undefined")
	ErrorDeleteFailed            = fmt.Errorf("delete_failed")
	ErrorInsertFailed            = fmt.Errorf("insert_failed")
	ErrorInvalidInput            = fmt.Errorf("invalid_input")
	ErrorRowsAffectedCheckFailed = fmt.Errorf("rows_affected_check_failed")
	ErrorSelectFailed            = fmt.Errorf("select_failed")
	ErrorSelectsFailed           = fmt.Errorf("selects_failed")
	ErrorStmtPreparationFailed   = fmt.Errorf("stmt_preparation_failed")
	ErrorUpdateFailed            = fmt.Errorf("update_failed")

	errorNoDatabaseConnection  = fmt.Errorf("no_database_connection")
	errorInputValidationFailed = fmt.Errorf("input_validation_failed")

	mysqlErrorDuplicateEntryCode uint16 = 1062
)
