package models

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type CreateMotorcycleV1Opts struct {
	Db *sql.DB

	UserId string
	Name   string
	Make   *string
	Model  *string
	Year   *int
}

func (o CreateMotorcycleV1Opts) Validate() error {
	errs := []error{}
	if o.Db == nil {
		errs = append(errs, errorNoDatabaseConnection)
	}
	if o.UserId == "" {
		errs = append(errs, fmt.Errorf("no user id supplied"))
	}
	if o.Name == "" {
		errs = append(errs, fmt.Errorf("no name supplied"))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func CreateMotorcycleV1(opts CreateMotorcycleV1Opts) (*Motorcycle, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("models.CreateMotorcycleV1: failed to validate input: %w", err)
	}

	motorcycleId := uuid.NewString()
	if err := executeMysqlInsert(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			INSERT INTO motorcycles(
				id,
				user_id,
				name,
				make,
				model,
				year
			) VALUES (?, ?, ?, ?, ?, ?)
		`,
		Args:         []any{motorcycleId, opts.UserId, opts.Name, opts.Make, opts.Model, opts.Year},
		FnSource:     "models.CreateMotorcycleV1",
		RowsAffected: oneRowAffected,
	}); err != nil {
		return nil, err
	}

	return &Motorcycle{
		Id:     motorcycleId,
		UserId: opts.UserId,
		Name:   opts.Name,
		Make:   opts.Make,
		Model:  opts.Model,
		Year:   opts.Year,
	}, nil
}
