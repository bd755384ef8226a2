package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the repositories care about.
const (
	errDuplicateEntry        = 1062
	errNoReferencedRow       = 1452
	errNoReferencedRowLegacy = 1216
)

// IsDuplicateEntry reports whether err is a unique constraint violation.
func IsDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == errDuplicateEntry
}

// IsForeignKeyViolation reports whether err is an insert referencing a
// missing parent row.
func IsForeignKeyViolation(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && (myErr.Number == errNoReferencedRow || myErr.Number == errNoReferencedRowLegacy)
}
