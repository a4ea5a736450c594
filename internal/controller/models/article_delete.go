package models

import (
	"database/sql"
)

type DeleteArticleV1Opts struct {
	Db *sql.DB

	Id string
}

func DeleteArticleV1(opts DeleteArticleV1Opts) error {
	return executeMysqlDelete(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			DELETE FROM articles
				WHERE id = ?
		`,
		Args:         []any{opts.Id},
		FnSource:     "models.DeleteArticleV1",
		RowsAffected: oneRowAffected,
	})
}
