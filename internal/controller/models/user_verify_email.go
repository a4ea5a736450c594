package models

import (
	"database/sql"
)

type VerifyUserEmailV1Opts struct {
	Db *sql.DB

	VerificationCode string
}

// VerifyUserEmailV1 marks the user holding the verification code as
// verified. Codes are single-use since the predicate excludes already
// verified users
func VerifyUserEmailV1(opts VerifyUserEmailV1Opts) error {
	return executeMysqlUpdate(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			UPDATE users SET
				is_email_verified = true,
				email_verified_at = now()
				WHERE email_verification_code = ?
					AND is_email_verified = false
		`,
		Args:         []any{opts.VerificationCode},
		FnSource:     "models.VerifyUserEmailV1",
		RowsAffected: oneRowAffected,
	})
}
