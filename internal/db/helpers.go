package db

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"logisticshub/internal/domain"
)

// QueryRower is satisfied by *sql.DB and *sql.Tx.
type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

const (
	errDupEntry         = 1062
	errRowIsReferenced  = 1451
	errNoReferencedRow  = 1452
	errRowIsReferenced2 = 1217
	errNoReferencedRow2 = 1216
)

// NullIfEmpty stores blank optional strings as NULL.
func NullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// NullableID maps a missing or non-positive optional foreign key to NULL.
func NullableID(id *int64) any {
	if id == nil || *id <= 0 {
		return nil
	}
	return *id
}

func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// TranslateError turns MySQL constraint failures into domain errors and
// sql.ErrNoRows into NotFound for resource.
func TranslateError(resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource}
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errRowIsReferenced, errRowIsReferenced2:
			return domain.ConflictError{Msg: domain.ErrHasReferences.Error(), Err: domain.ErrHasReferences}
		case errNoReferencedRow, errNoReferencedRow2:
			return domain.ValidationError{Field: resource, Msg: "references a record that does not exist"}
		case errDupEntry:
			return domain.ConflictError{Resource: resource, Msg: "already exists"}
		}
	}
	return err
}
