package models

import (
	"database/sql"
)

type VerifyUserMfaV1Opts struct {
	Db *sql.DB

	Id     string
	UserId string
}

// VerifyUserMfaV1 marks a factor as verified. The update is scoped to
// the owning user so a factor id belonging to someone else affects
// zero rows and surfaces as an error
func VerifyUserMfaV1(opts VerifyUserMfaV1Opts) error {
	return executeMysqlUpdate(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			UPDATE user_mfa SET
				is_verified = true,
				verified_at = now()
				WHERE id = ?
					AND user_id = ?
		`,
		Args:         []any{opts.Id, opts.UserId},
		FnSource:     "models.VerifyUserMfaV1",
		RowsAffected: oneRowAffected,
	})
}
