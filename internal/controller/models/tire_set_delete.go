package models

import (
	"database/sql"
)

type DeleteTireSetV1Opts struct {
	Db *sql.DB

	Id string
}

func DeleteTireSetV1(opts DeleteTireSetV1Opts) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			DELETE FROM tire_sets
				WHERE id = ?
		`,
		Args:         []any{opts.Id},
		FnSource:     "models.DeleteTireSetV1",
		RowsAffected: oneRowAffected,
	})
}
