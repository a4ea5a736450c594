package models

import (
	"database/sql"
	"fmt"
)

type UpdatePlatformV1Opts struct {
	Db *sql.DB

	Id           string
	Name         *string
	Url          *string
	Description  *string
	IsPublished  *bool
	DisplayOrder *int
}

// UpdatePlatformV1 updates the provided fields; the slug is left
// untouched so existing links keep working
func UpdatePlatformV1(opts UpdatePlatformV1Opts) error {
	setters := []string{}
	args := []any{}
	if opts.Name != nil {
		setters = append(setters, "name = ?")
		args = append(args, *opts.Name)
	}
	if opts.Url != nil {
		setters = append(setters, "url = ?")
		args = append(args, *opts.Url)
	}
	if opts.Description != nil {
		setters = append(setters, "description = ?")
		args = append(args, *opts.Description)
	}
	if opts.IsPublished != nil {
		setters = append(setters, "is_published = ?")
		args = append(args, *opts.IsPublished)
	}
	if opts.DisplayOrder != nil {
		setters = append(setters, "display_order = ?")
		args = append(args, *opts.DisplayOrder)
	}
	if len(setters) == 0 {
		return fmt.Errorf("models.UpdatePlatformV1: nothing to update: %w", ErrorInvalidInput)
	}
	args = append(args, opts.Id)

	stmt := "UPDATE platforms SET "
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
		FnSource:     "models.UpdatePlatformV1",
		RowsAffected: atMostNRowsAffected(1),
	})
}

type UpdatePlatformIconV1Opts struct {
	Db *sql.DB

	Id           string
	IconFilename string
}

func UpdatePlatformIconV1(opts UpdatePlatformIconV1Opts) error {
	return executeMysqlUpdate(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			UPDATE platforms SET
				icon_filename = ?
				WHERE id = ?
		`,
		Args:         []any{opts.IconFilename, opts.Id},
		FnSource:     "models.UpdatePlatformIconV1",
		RowsAffected: atMostNRowsAffected(1),
	})
}
