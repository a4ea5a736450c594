package models

import (
	"database/sql"
)

type DeleteUserMfaV1Opts struct {
	Db *sql.DB

	Id     string
	UserId string
}

// DeleteUserMfaV1 removes a factor; the user id is part of the
// predicate so a user can only unenroll their own factors
func DeleteUserMfaV1(opts DeleteUserMfaV1Opts) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			DELETE FROM user_mfa
				WHERE id = ?
					AND user_id = ?
		`,
		Args:         []any{opts.Id, opts.UserId},
		FnSource:     "models.DeleteUserMfaV1",
		RowsAffected: oneRowAffected,
	})
}
