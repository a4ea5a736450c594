package models

import (
	"database/sql"
	"fmt"
)

type GetUserV1Opts struct {
	Db *sql.DB

	Id    *string
	Email *string
}

func GetUserV1(opts GetUserV1Opts) (*User, error) {
	selectionField := "`users`.`email`"
	selectionValue := ""
	if opts.Id != nil {
		selectionField = "`users`.`id`"
		selectionValue = *opts.Id
	} else if opts.Email != nil {
		selectionValue = *opts.Email
	} else {
		return nil, fmt.Errorf("models.GetUserV1: failed to receive either the user id or email: %w", ErrorInvalidInput)
	}

	userInstance := User{}
	if err := executeMysqlSelect(mysqlQueryInput{
		Db: opts.Db,
		Stmt: fmt.Sprintf(`
			SELECT
				users.id,
				users.email,
				users.password_hash,
				users.email_verification_code,
				users.is_email_verified,
				users.created_at,
				users.last_updated_at
				FROM users
					WHERE %s = ?
		`, selectionField),
		Args:     []any{selectionValue},
		FnSource: "models.GetUserV1",
		ProcessRow: func(r *sql.Row) error {
			return r.Scan(
				&userInstance.Id,
				&userInstance.Email,
				&userInstance.PasswordHash,
				&userInstance.EmailVerificationCode,
				&userInstance.IsEmailVerified,
				&userInstance.CreatedAt,
				&userInstance.LastUpdatedAt,
			)
		},
	}); err != nil {
		return nil, err
	}
	return &userInstance, nil
}
