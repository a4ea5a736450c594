package models

import (
	"database/sql"
	"fmt"
)

type CountUserMfasV1Opts struct {
	Db *sql.DB

	UserId       string
	VerifiedOnly bool
}

func CountUserMfasV1(opts CountUserMfasV1Opts) (int, error) {
	verifiedFilter := ""
	if opts.VerifiedOnly {
		verifiedFilter = "AND is_verified = true"
	}
	count := 0
	if err := executeMysqlSelect(mysqlQueryInput{
		Db: opts.Db,
		Stmt: fmt.Sprintf(`
			SELECT COUNT(*)
				FROM user_mfa
					WHERE user_id = ?
						%s
		`, verifiedFilter),
		Args:     []any{opts.UserId},
		FnSource: "models.CountUserMfasV1",
		ProcessRow: func(r *sql.Row) error {
			return r.Scan(&count)
		},
	}); err != nil {
		return 0, err
	}
	return count, nil
}
