package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type WaitlistEntry struct {
	Id        string     `json:"id"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"createdAt"`
}

type WaitlistEntries []WaitlistEntry

type CreateWaitlistEntryV1Opts struct {
	Db *sql.DB

	Email string
}

// CreateWaitlistEntryV1 records an interested email address. A repeat
// signup surfaces as ErrorDuplicateEntry
func CreateWaitlistEntryV1(opts CreateWaitlistEntryV1Opts) (*WaitlistEntry, error) {
	entryId := uuid.NewString()
	if err := executeMysqlInsert(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			INSERT INTO waitlist(
				id,
				email
			) VALUES (?, ?)
		`,
		Args:         []any{entryId, opts.Email},
		FnSource:     "models.CreateWaitlistEntryV1",
		RowsAffected: oneRowAffected,
	}); err != nil {
		return nil, err
	}
	return &WaitlistEntry{
		Id:    entryId,
		Email: opts.Email,
	}, nil
}

type ListWaitlistEntriesV1Opts struct {
	Db *sql.DB
}

func ListWaitlistEntriesV1(opts ListWaitlistEntriesV1Opts) (WaitlistEntries, error) {
	output := WaitlistEntries{}
	if err := executeMysqlSelects(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			SELECT
				id,
				email,
				created_at
				FROM waitlist
					ORDER BY created_at ASC
		`,
		Args:     []any{},
		FnSource: "models.ListWaitlistEntriesV1",
		ProcessRows: func(rows *sql.Rows) error {
			entry := WaitlistEntry{}
			if err := rows.Scan(
				&entry.Id,
				&entry.Email,
				&entry.CreatedAt,
			); err != nil {
				return err
			}
			output = append(output, entry)
			return nil
		},
	}); err != nil {
		return nil, err
	}
	return output, nil
}
