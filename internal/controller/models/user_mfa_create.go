package models

import (
	"database/sql"
	"errors"
	"fmt"

	"dontverifyme/internal/auth"

	"github.com/google/uuid"
)

// MaxVerifiedMfasPerUser caps the number of verified factors a single
// user can hold, enrollment past this point is rejected
const MaxVerifiedMfasPerUser = 10

type CreateUserMfaV1Opts struct {
	Db *sql.DB

	Issuer string
	Name   *string
	Type   string
	UserId string
}

func (o CreateUserMfaV1Opts) Validate() error {
	errs := []error{}
	if o.Db == nil {
		errs = append(errs, errorNoDatabaseConnection)
	}
	if o.Type != MfaTypeTotp {
		errs = append(errs, fmt.Errorf("unsupported mfa type[%s]", o.Type))
	}
	if o.UserId == "" {
		errs = append(errs, fmt.Errorf("no user id supplied"))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CreateUserMfaV1 enrolls a new unverified totp factor. Stale
// unverified factors from previous abandoned enrollments are removed
// first so they don't pile up
func CreateUserMfaV1(opts CreateUserMfaV1Opts) (*UserMfa, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("models.CreateUserMfaV1: failed to validate input: %w", err)
	}

	verifiedCount, err := CountUserMfasV1(CountUserMfasV1Opts{
		Db:           opts.Db,
		UserId:       opts.UserId,
		VerifiedOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("models.CreateUserMfaV1: failed to count verified factors: %w", err)
	}
	if verifiedCount >= MaxVerifiedMfasPerUser {
		return nil, fmt.Errorf("models.CreateUserMfaV1: %w", ErrorMfaLimitReached)
	}

	// best effort, a failed purge must not block the new enrollment
	executeMysqlDelete(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			DELETE FROM user_mfa
				WHERE user_id = ?
					AND is_verified = false
		`,
		Args:         []any{opts.UserId},
		FnSource:     "models.CreateUserMfaV1",
		RowsAffected: atLeastNRowsAffected(0),
	})

	userInstance, err := GetUserV1(GetUserV1Opts{Db: opts.Db, Id: &opts.UserId})
	if err != nil {
		return nil, fmt.Errorf("models.CreateUserMfaV1: failed to get user: %w", err)
	}

	secret, err := auth.CreateTotpSeed(opts.Issuer, userInstance.Email)
	if err != nil {
		return nil, fmt.Errorf("models.CreateUserMfaV1: failed to create totp seed: %s", err)
	}

	mfaId := uuid.NewString()
	if err := executeMysqlInsert(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			INSERT INTO user_mfa(
				id,
				user_id,
				type,
				name,
				secret
			) VALUES (?, ?, ?, ?, ?)
		`,
		Args:         []any{mfaId, opts.UserId, opts.Type, opts.Name, secret},
		FnSource:     "models.CreateUserMfaV1",
		RowsAffected: oneRowAffected,
	}); err != nil {
		return nil, err
	}

	return &UserMfa{
		Id:     mfaId,
		Type:   opts.Type,
		Name:   opts.Name,
		Secret: &secret,
		UserId: opts.UserId,
	}, nil
}
