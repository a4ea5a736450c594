package models

import (
	"database/sql"
)

type ListMotorcyclesV1Opts struct {
	Db *sql.DB

	UserId string
}

func ListMotorcyclesV1(opts ListMotorcyclesV1Opts) (Motorcycles, error) {
	output := Motorcycles{}
	if err := executeMysqlSelects(mysqlQueryInput{
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
					WHERE user_id = ?
					ORDER BY created_at ASC
		`,
		Args:     []any{opts.UserId},
		FnSource: "models.ListMotorcyclesV1",
		ProcessRows: func(rows *sql.Rows) error {
			motorcycle := Motorcycle{}
			if err := rows.Scan(
				&motorcycle.Id,
				&motorcycle.UserId,
				&motorcycle.Name,
				&motorcycle.Make,
				&motorcycle.Model,
				&motorcycle.Year,
				&motorcycle.CreatedAt,
				&motorcycle.LastUpdatedAt,
			); err != nil {
				return err
			}
			output = append(output, motorcycle)
			return nil
		},
	}); err != nil {
		return nil, err
	}
	return output, nil
}
