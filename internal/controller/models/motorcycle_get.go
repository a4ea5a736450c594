package models

import (
	"database/sql"
)

type GetMotorcycleV1Opts struct {
	Db *sql.DB

	Id     string
	UserId string
}

// GetMotorcycleV1 returns a motorcycle scoped to its owner
func GetMotorcycleV1(opts GetMotorcycleV1Opts) (*Motorcycle, error) {
	motorcycle := Motorcycle{}
	if err := executeMysqlSelect(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			SELECT
				id,
				user_id,
				name,
				make,
				model,
				year,
				created_at,
				last_updated_at
				FROM motorcycles
					WHERE id = ?
						AND user_id = ?
		`,
		Args:     []any{opts.Id, opts.UserId},
		FnSource: "models.GetMotorcycleV1",
		ProcessRow: func(r *sql.Row) error {
			return r.Scan(
				&motorcycle.Id,
				&motorcycle.UserId,
				&motorcycle.Name,
				&motorcycle.Make,
				&motorcycle.Model,
				&motorcycle.Year,
				&motorcycle.CreatedAt,
				&motorcycle.LastUpdatedAt,
			)
		},
	}); err != nil {
		return nil, err
	}
	return &motorcycle, nil
}
