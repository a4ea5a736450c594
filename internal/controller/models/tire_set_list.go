package models

import (
	"database/sql"
	"fmt"
)

type ListTireSetsV1Opts struct {
	Db *sql.DB

	MotorcycleId string

	// ActiveOnly excludes tire sets that have been removed
	ActiveOnly bool
}

func ListTireSetsV1(opts ListTireSetsV1Opts) (TireSets, error) {
	activeFilter := ""
	if opts.ActiveOnly {
		activeFilter = "AND removed_at IS NULL"
	}

	output := TireSets{}
	if err := executeMysqlSelects(mysqlQueryInput{
		Db: opts.Db,
		Stmt: fmt.Sprintf(`
			SELECT
				id,
				motorcycle_id,
				position,
				brand,
				model,
				installed_at,
				installed_mileage,
				expected_life_km,
				removed_at,
				created_at,
				last_updated_at
				FROM tire_sets
					WHERE motorcycle_id = ?
						%s
					ORDER BY installed_at DESC
		`, activeFilter),
		Args:     []any{opts.MotorcycleId},
		FnSource: "models.ListTireSetsV1",
		ProcessRows: func(rows *sql.Rows) error {
			tireSet := TireSet{}
			if err := rows.Scan(
				&tireSet.Id,
				&tireSet.MotorcycleId,
				&tireSet.Position,
				&tireSet.Brand,
				&tireSet.Model,
				&tireSet.InstalledAt,
				&tireSet.InstalledMileage,
				&tireSet.ExpectedLifeKm,
				&tireSet.RemovedAt,
				&tireSet.CreatedAt,
				&tireSet.LastUpdatedAt,
			); err != nil {
				return err
			}
			output = append(output, tireSet)
			return nil
		},
	}); err != nil {
		return nil, err
	}
	return output, nil
}
