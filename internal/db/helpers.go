package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// NullIfEmpty helps store optional strings without writing empty values
// into columns carrying a unique index.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// IsDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062), which is how the schema enforces unique emails, phones,
// usernames and reservation numbers under concurrent requests.
func IsDuplicate(err error) bool {
	var my *mysql.MySQLError
	return errors.As(err, &my) && my.Number == 1062
}
