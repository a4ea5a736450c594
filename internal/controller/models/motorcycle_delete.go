package models

import (
	"database/sql"
)

type DeleteMotorcycleV1Opts struct {
	Db *sql.DB

	Id     string
	UserId string
}

// DeleteMotorcycleV1 removes a motorcycle and, via the schema's
// cascade, its tire sets
func DeleteMotorcycleV1(opts DeleteMotorcycleV1Opts) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			DELETE FROM motorcycles
				WHERE id = ?
					AND user_id = ?
		`,
		Args:         []any{opts.Id, opts.UserId},
		FnSource:     "models.DeleteMotorcycleV1",
		RowsAffected: oneRowAffected,
	})
}
