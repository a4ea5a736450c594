package models

import (
	"database/sql"
	"fmt"
)

type ListPlatformsV1Opts struct {
	Db *sql.DB

	// PublishedOnly hides unpublished platforms, this is what anonymous
	// visitors get
	PublishedOnly bool
}

func ListPlatformsV1(opts ListPlatformsV1Opts) (Platforms, error) {
	filters := ""
	if opts.PublishedOnly {
		filters = "WHERE is_published = true"
	}

	output := Platforms{}
	if err := executeMysqlSelects(mysqlQueryInput{
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
					%s
					ORDER BY display_order ASC, name ASC
		`, filters),
		Args:     []any{},
		FnSource: "models.ListPlatformsV1",
		ProcessRows: func(rows *sql.Rows) error {
			platform := Platform{}
			if err := rows.Scan(
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
			); err != nil {
				return err
			}
			output = append(output, platform)
			return nil
		},
	}); err != nil {
		return nil, err
	}
	return output, nil
}
