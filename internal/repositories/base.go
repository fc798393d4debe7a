package repositories

import (
	"context"
	"database/sql"

	intconfig "logisticshub/internal/config"
	intdb "logisticshub/internal/db"
)

// Execer is satisfied by *sql.DB and *sql.Tx so the same repository can run
// inside or outside a transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func dbOr(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// exists is used after an UPDATE that touched no rows, since MySQL reports
// unchanged rows as not affected.
func exists(ctx context.Context, q Execer, table string, id int64) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func checkUpdated(ctx context.Context, q Execer, res sql.Result, table, resource string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	ok, err := exists(ctx, q, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return intdb.TranslateError(resource, sql.ErrNoRows)
	}
	return nil
}

func checkDeleted(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return intdb.TranslateError(resource, sql.ErrNoRows)
	}
	return nil
}
