package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// undefinedTableCode is the postgres SQLSTATE for "relation does not exist".
const undefinedTableCode = "42P01"

// IsUndefinedTable reports whether err means the schema was never created.
// Callers surface this as a distinct "database not set up" condition so the
// UI can give actionable setup guidance instead of a generic failure.
func IsUndefinedTable(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == undefinedTableCode
	}
	// Fallback for drivers that only expose the rendered message.
	msg := err.Error()
	return strings.Contains(msg, undefinedTableCode) ||
		(strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"))
}
