package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// execOne runs a statement that must touch exactly one row.
// Zero affected rows is reported as pgx.ErrNoRows.
func execOne(ctx context.Context, db execer, sql string, args ...any) error {
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// placeholder returns "$n".
func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func nonNilOptions(opts []string) []string {
	if opts == nil {
		return []string{}
	}
	return opts
}
