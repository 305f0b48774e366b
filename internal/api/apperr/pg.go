package apperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// FromDB maps store errors that escaped the repository to a client error.
// Returns (nil, false) when err is not a recognised driver error.
func FromDB(err error) (*Error, bool) {
	var pg *pgconn.PgError
	if errors.As(err, &pg) {
		return fromPG(pg), true
	}
	var lite *sqlite.Error
	if errors.As(err, &lite) {
		return fromSQLite(lite), true
	}
	return nil, false
}

func fromPG(pg *pgconn.PgError) *Error {
	switch pg.Code {
	case "23505": // unique_violation
		return New(http.StatusConflict, "value already exists")
	case "23503": // foreign_key_violation
		return New(http.StatusConflict, "resource is referenced by other records")
	case "23502": // not_null_violation
		if pg.ColumnName != "" {
			return New(http.StatusBadRequest, pg.ColumnName+" is required")
		}
		return New(http.StatusBadRequest, "required field is missing")
	case "23514": // check_violation
		return New(http.StatusUnprocessableEntity, "constraint failed")
	case "22P02": // invalid_text_representation
		return New(http.StatusBadRequest, "invalid format")
	case "22001": // string_data_right_truncation
		return New(http.StatusBadRequest, "value is too long")
	case "22003": // numeric_value_out_of_range
		return New(http.StatusBadRequest, "value is out of range")
	case "40001": // serialization_failure
		return New(http.StatusConflict, "transaction conflict, please retry")
	case "40P01": // deadlock_detected
		return New(http.StatusConflict, "deadlock detected, please retry")
	default:
		return New(http.StatusInternalServerError, "Database error")
	}
}

func fromSQLite(e *sqlite.Error) *Error {
	switch e.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return New(http.StatusConflict, "value already exists")
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return New(http.StatusBadRequest, "required field is missing")
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return New(http.StatusUnprocessableEntity, "constraint failed")
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return New(http.StatusConflict, "database is busy, please retry")
	default:
		return New(http.StatusInternalServerError, "Database error")
	}
}
