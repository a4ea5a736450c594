package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type CreateTireSetV1Opts struct {
	Db *sql.DB

	MotorcycleId     string
	Position         string
	Brand            string
	Model            string
	InstalledAt      *time.Time
	InstalledMileage int
	ExpectedLifeKm   *int
}

func (o CreateTireSetV1Opts) Validate() error {
	errs := []error{}
	if o.Db == nil {
		errs = append(errs, errorNoDatabaseConnection)
	}
	if o.MotorcycleId == "" {
		errs = append(errs, fmt.Errorf("no motorcycle id supplied"))
	}
	if o.Position != TirePositionFront && o.Position != TirePositionRear {
		errs = append(errs, fmt.Errorf("unknown tire position[%s]", o.Position))
	}
	if o.Brand == "" {
		errs = append(errs, fmt.Errorf("no brand supplied"))
	}
	if o.Model == "" {
		errs = append(errs, fmt.Errorf("no model supplied"))
	}
	if o.InstalledMileage < 0 {
		errs = append(errs, fmt.Errorf("installed mileage cannot be negative"))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CreateTireSetV1 mounts a new tire set; an active set in the same
// position is retired first so the motorcycle never carries two live
// sets on one wheel
func CreateTireSetV1(opts CreateTireSetV1Opts) (*TireSet, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("models.CreateTireSetV1: failed to validate input: %w", err)
	}

	if err := executeMysqlUpdate(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			UPDATE tire_sets SET
				removed_at = now()
				WHERE motorcycle_id = ?
					AND position = ?
					AND removed_at IS NULL
		`,
		Args:         []any{opts.MotorcycleId, opts.Position},
		FnSource:     "models.CreateTireSetV1",
		RowsAffected: atMostNRowsAffected(1),
	}); err != nil {
		return nil, err
	}

	installedAt := time.Now()
	if opts.InstalledAt != nil {
		installedAt = *opts.InstalledAt
	}

	tireSetId := uuid.NewString()
	if err := executeMysqlInsert(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			INSERT INTO tire_sets(
				id,
				motorcycle_id,
				position,
				brand,
				model,
				installed_at,
				installed_mileage,
				expected_life_km
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
		Args: []any{
			tireSetId,
			opts.MotorcycleId,
			opts.Position,
			opts.Brand,
			opts.Model,
			installedAt,
			opts.InstalledMileage,
			opts.ExpectedLifeKm,
		},
		FnSource:     "models.CreateTireSetV1",
		RowsAffected: oneRowAffected,
	}); err != nil {
		return nil, err
	}

	return &TireSet{
		Id:               tireSetId,
		MotorcycleId:     opts.MotorcycleId,
		Position:         opts.Position,
		Brand:            opts.Brand,
		Model:            opts.Model,
		InstalledAt:      &installedAt,
		InstalledMileage: opts.InstalledMileage,
		ExpectedLifeKm:   opts.ExpectedLifeKm,
	}, nil
}
