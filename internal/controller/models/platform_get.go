package models

import (
	"database/sql"
	"fmt"
)

type GetPlatformV1Opts struct {
	Db *sql.DB

	Id   *string
	Slug *string

	// PublishedOnly treats unpublished platforms as missing
	PublishedOnly bool
}

func GetPlatformV1(opts GetPlatformV1Opts) (*Platform, error) {
	selectorField := ""
	selectorValue := ""
	if opts.Id != nil {
		selectorField = "`platforms`.`id`"
		selectorValue = *opts.Id
	} else if opts.Slug != nil {
		selectorField = "`platforms`.`slug`"
		selectorValue = *opts.Slug
	} else {
		return nil, fmt.Errorf("models.GetPlatformV1: failed to receive either an id or a slug: %w", ErrorInvalidInput)
	}

	filters := ""
	if opts.PublishedOnly {
		filters = "AND is_published = true"
	}

	platform := Platform{}
	if err := executeMysqlSelect(mysqlQueryInput{
		Db: opts.Db,
		Stmt: fmt.Sprintf(`
			SELECT
				id,
				slug,
				name,
				url,
				description,
				icon_filename,
				is_published,
				display_order,
				created_at,
				last_updated_at
				FROM platforms
					WHERE %s = ?
						%s
		`, selectorField, filters),
		Args:     []any{selectorValue},
		FnSource: "models.GetPlatformV1",
		ProcessRow: func(r *sql.Row) error {
			return r.Scan(
				&platform.Id,
				&platform.Slug,
				&platform.Name,
				&platform.Url,
				&platform.Description,
				&platform.IconFilename,
				&platform.IsPublished,
				&platform.DisplayOrder,
				&platform.CreatedAt,
				&platform.LastUpdatedAt,
			)
		},
	}); err != nil {
		return nil, err
	}
	return &platform, nil
}
