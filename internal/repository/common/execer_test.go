package common

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type recordingExecer struct {
	queries []string
	args    [][]any
}

func (r *recordingExecer) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	r.queries = append(r.queries, query)
	r.args = append(r.args, append([]any(nil), args...))
	return nil, nil
}

type recordingBeginner struct {
	opts *sql.TxOptions
	err  error
}

func (b *recordingBeginner) BeginTxx(_ context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	b.opts = opts
	return nil, b.err
}
