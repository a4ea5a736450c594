package models

import (
	"database/sql"
	"fmt"
)

type UpdateArticleV1Opts struct {
	Db *sql.DB

	Id    string
	Title *string
	Body  *string
}

func UpdateArticleV1(opts UpdateArticleV1Opts) error {
	setters := []string{}
	args := []any{}
	if opts.Title != nil {
		setters = append(setters, "title = ?")
		args = append(args, *opts.Title)
	}
	if opts.Body != nil {
		setters = append(setters, "body = ?")
		args = append(args, *opts.Body)
	}
	if len(setters) == 0 {
		return fmt.Errorf("models.UpdateArticleV1: nothing to update: %w", ErrorInvalidInput)
	}
	args = append(args, opts.Id)

	stmt := "UPDATE articles SET "
	for i, setter := range setters {
		if i > 0 {
			stmt += ", "
		}
		stmt += setter
	}
	stmt += " WHERE id = ?"

	return executeMysqlUpdate(mysqlQueryInput{
		Db:           opts.Db,
		Stmt:         stmt,
		Args:         args,
		FnSource:     "models.UpdateArticleV1",
		RowsAffected: atMostNRowsAffected(1),
	})
}

type PublishArticleV1Opts struct {
	Db *sql.DB

	Id string
}

// PublishArticleV1 marks a draft as published, stamping published_at
// only on the transition so re-publishing keeps the original date
func PublishArticleV1(opts PublishArticleV1Opts) error {
	return executeMysqlUpdate(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			UPDATE articles SET
				is_published = true,
				published_at = COALESCE(published_at, now())
				WHERE id = ?
		`,
		Args:         []any{opts.Id},
		FnSource:     "models.PublishArticleV1",
		RowsAffected: atMostNRowsAffected(1),
	})
}

type UnpublishArticleV1Opts struct {
	Db *sql.DB

	Id string
}

func UnpublishArticleV1(opts UnpublishArticleV1Opts) error {
	return executeMysqlUpdate(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			UPDATE articles SET
				is_published = false
				WHERE id = ?
		`,
		Args:         []any{opts.Id},
		FnSource:     "models.UnpublishArticleV1",
		RowsAffected: atMostNRowsAffected(1),
	})
}
