package models

import (
	"database/sql"
	"fmt"
)

type GetArticleV1Opts struct {
	Db *sql.DB

	Id   *string
	Slug *string
}

func GetArticleV1(opts GetArticleV1Opts) (*Article, error) {
	selectorField := ""
	selectorValue := ""
	if opts.Id != nil {
		selectorField = "`articles`.`id`"
		selectorValue = *opts.Id
	} else if opts.Slug != nil {
		selectorField = "`articles`.`slug`"
		selectorValue = *opts.Slug
	} else {
		return nil, fmt.Errorf("models.GetArticleV1: failed to receive either an id or a slug: %w", ErrorInvalidInput)
	}

	article := Article{}
	if err := executeMysqlSelect(mysqlQueryInput{
		Db: opts.Db,
		Stmt: fmt.Sprintf(`
			SELECT
				id,
				platform_id,
				slug,
				title,
				body,
				is_published,
				published_at,
				created_at,
				last_updated_at
				FROM articles
					WHERE %s = ?
		`, selectorField),
		Args:     []any{selectorValue},
		FnSource: "models.GetArticleV1",
		ProcessRow: func(r *sql.Row) error {
			return r.Scan(
				&article.Id,
				&article.PlatformId,
				&article.Slug,
				&article.Title,
				&article.Body,
				&article.IsPublished,
				&article.PublishedAt,
				&article.CreatedAt,
				&article.LastUpdatedAt,
			)
		},
	}); err != nil {
		return nil, err
	}
	return &article, nil
}
