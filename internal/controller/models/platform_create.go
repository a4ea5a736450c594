package models

import (
	"database/sql"
	"errors"
	"fmt"

	"dontverifyme/internal/common"

	"github.com/google/uuid"
)

type CreatePlatformV1Opts struct {
	Db *sql.DB

	Name        string
	Url         *string
	Description *string
}

func (o CreatePlatformV1Opts) Validate() error {
	errs := []error{}
	if o.Db == nil {
		errs = append(errs, errorNoDatabaseConnection)
	}
	if o.Name == "" {
		errs = append(errs, fmt.Errorf("no name supplied"))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CreatePlatformV1 inserts a platform, deriving its slug from the
// name. A duplicate slug surfaces as ErrorDuplicateEntry
func CreatePlatformV1(opts CreatePlatformV1Opts) (*Platform, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("models.CreatePlatformV1: failed to validate input: %w", err)
	}

	slug := common.Slugify(opts.Name)
	if slug == "" {
		return nil, fmt.Errorf("models.CreatePlatformV1: name[%s] yields an empty slug: %w", opts.Name, ErrorInvalidInput)
	}
	platformId := uuid.NewString()

	if err := executeMysqlInsert(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			INSERT INTO platforms(
				id,
				slug,
				name,
				url,
				description
			) VALUES (?, ?, ?, ?, ?)
		`,
		Args:         []any{platformId, slug, opts.Name, opts.Url, opts.Description},
		FnSource:     "models.CreatePlatformV1",
		RowsAffected: oneRowAffected,
	}); err != nil {
		return nil, err
	}

	return &Platform{
		Id:          platformId,
		Slug:        slug,
		Name:        opts.Name,
		Url:         opts.Url,
		Description: opts.Description,
	}, nil
}
