package models

import (
	"database/sql"
	"errors"
	"fmt"

	"dontverifyme/internal/auth"
	"dontverifyme/internal/common"

	"github.com/google/uuid"
)

type CreateUserV1Opts struct {
	Db *sql.DB

	Email    string
	Password string
}

func (o CreateUserV1Opts) Validate() error {
	errs := []error{}

	if o.Db == nil {
		errs = append(errs, errorNoDatabaseConnection)
	}
	if o.Email == "" {
		errs = append(errs, fmt.Errorf("no email supplied"))
	}
	if o.Password == "" {
		errs = append(errs, fmt.Errorf("no password supplied"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// CreateUserV1 inserts a new unverified user and returns the email
// verification code the user has to submit before they can log in
func CreateUserV1(opts CreateUserV1Opts) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", fmt.Errorf("models.CreateUserV1: failed to validate input arguments: %w", err)
	}
	userUuid := uuid.New().String()
	passwordHash, err := auth.HashPassword(opts.Password)
	if err != nil {
		return "", fmt.Errorf("models.CreateUserV1: failed to hash password: %s", err)
	}
	verificationCode, err := common.GenerateRandomString(32)
	if err != nil {
		return "", fmt.Errorf("models.CreateUserV1: failed to generate a verification code: %s", err)
	}

	if err := executeMysqlInsert(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			INSERT INTO users(
				id,
				email,
				password_hash,
				email_verification_code
			) VALUES (?, ?, ?, ?)
		`,
		Args:         []any{userUuid, opts.Email, passwordHash, verificationCode},
		FnSource:     "models.CreateUserV1",
		RowsAffected: oneRowAffected,
	}); err != nil {
		return "", err
	}

	return verificationCode, nil
}
