// Package sqlxrepos implements the domain repositories over plain
// parameterized SQL. Storage-level constraint violations are translated to
// the domain errors at execution time: the services' pre-checks are a
// best-effort optimization, the unique constraints here are the arbiter.
package sqlxrepos

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// pq unique_violation
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}

// trapNoRowsErr maps sql.ErrNoRows to the given domain sentinel.
func trapNoRowsErr(err, sentinel error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return sentinel
	}
	return errors.Wrap(err, msg)
}
