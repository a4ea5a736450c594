package models

import (
	"database/sql"
	"errors"
	"fmt"

	"dontverifyme/internal/common"

	"github.com/google/uuid"
)

type CreateArticleV1Opts struct {
	Db *sql.DB

	PlatformId *string
	Title      string
	Body       string
}

func (o CreateArticleV1Opts) Validate() error {
	errs := []error{}
	if o.Db == nil {
		errs = append(errs, errorNoDatabaseConnection)
	}
	if o.Title == "" {
		errs = append(errs, fmt.Errorf("no title supplied"))
	}
	if o.Body == "" {
		errs = append(errs, fmt.Errorf("no body supplied"))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CreateArticleV1 inserts an article as an unpublished draft
func CreateArticleV1(opts CreateArticleV1Opts) (*Article, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("models.CreateArticleV1: failed to validate input: %w", err)
	}

	slug := common.Slugify(opts.Title)
	if slug == "" {
		return nil, fmt.Errorf("models.CreateArticleV1: title[%s] yields an empty slug: %w", opts.Title, ErrorInvalidInput)
	}
	articleId := uuid.NewString()

	if err := executeMysqlInsert(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			INSERT INTO articles(
				id,
				platform_id,
				slug,
				title,
				body
			) VALUES (?, ?, ?, ?, ?)
		`,
		Args:         []any{articleId, opts.PlatformId, slug, opts.Title, opts.Body},
		FnSource:     "models.CreateArticleV1",
		RowsAffected: oneRowAffected,
	}); err != nil {
		return nil, err
	}

	return &Article{
		Id:         articleId,
		PlatformId: opts.PlatformId,
		Slug:       slug,
		Title:      opts.Title,
		Body:       opts.Body,
	}, nil
}
