package models

import (
	"database/sql"
)

type RetireTireSetV1Opts struct {
	Db *sql.DB

	Id string
}

// RetireTireSetV1 marks a tire set as removed without mounting a
// replacement
func RetireTireSetV1(opts RetireTireSetV1Opts) error {
	return executeMysqlUpdate(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			UPDATE tire_sets SET
				removed_at = now()
				WHERE id = ?
					AND removed_at IS NULL
		`,
		Args:         []any{opts.Id},
		FnSource:     "models.RetireTireSetV1",
		RowsAffected: oneRowAffected,
	})
}
