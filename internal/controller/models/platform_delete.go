package models

import (
	"database/sql"
)

type DeletePlatformV1Opts struct {
	Db *sql.DB

	Id string
}

func DeletePlatformV1(opts DeletePlatformV1Opts) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			DELETE FROM platforms
				WHERE id = ?
		`,
		Args:         []any{opts.Id},
		FnSource:     "models.DeletePlatformV1",
		RowsAffected: oneRowAffected,
	})
}
