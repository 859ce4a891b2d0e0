package repositories

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors returned by repositories. Services branch on these with
// errors.Is instead of inspecting driver error codes.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrSchemaMismatch indicates the query referenced a column or table the
	// current schema does not have, e.g. localized columns for a language
	// that has not been rolled out yet.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrDuplicate indicates an insert violated a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// MySQL server error numbers recognized by translateError.
const (
	mysqlErrBadFieldError  = 1054
	mysqlErrNoSuchTable    = 1146
	mysqlErrDuplicateEntry = 1062
)

// translateError maps driver-level errors onto the repository sentinels.
// Errors with no mapping are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrBadFieldError, mysqlErrNoSuchTable:
			return ErrSchemaMismatch
		case mysqlErrDuplicateEntry:
			return ErrDuplicate
		}
	}
	return err
}
