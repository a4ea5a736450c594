package models

import (
	"database/sql"
	"fmt"
)

type ListArticlesV1Opts struct {
	Db *sql.DB

	// PlatformId when set restricts the listing to one platform
	PlatformId *string

	// PublishedOnly excludes drafts, this is what anonymous readers
	// get
	PublishedOnly bool
}

func ListArticlesV1(opts ListArticlesV1Opts) (Articles, error) {
	filters := ""
	args := []any{}
	if opts.PlatformId != nil {
		filters += "AND platform_id = ? "
		args = append(args, *opts.PlatformId)
	}
	if opts.PublishedOnly {
		filters += "AND is_published = true "
	}

	output := Articles{}
	if err := executeMysqlSelects(mysqlQueryInput{
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
					WHERE 1=1
						%s
					ORDER BY created_at DESC
		`, filters),
		Args:     args,
		FnSource: "models.ListArticlesV1",
		ProcessRows: func(rows *sql.Rows) error {
			article := Article{}
			if err := rows.Scan(
				&article.Id,
				&article.PlatformId,
				&article.Slug,
				&article.Title,
				&article.Body,
				&article.IsPublished,
				&article.PublishedAt,
				&article.CreatedAt,
				&article.LastUpdatedAt,
			); err != nil {
				return err
			}
			output = append(output, article)
			return nil
		},
	}); err != nil {
		return nil, err
	}
	return output, nil
}
