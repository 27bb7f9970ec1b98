package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// UniqueViolationCode indicates a unique constraint violation.
	UniqueViolationCode = "23505"
	// ForeignKeyViolationCode indicates a foreign key violation.
	ForeignKeyViolationCode = "23503"
	// CheckViolationCode indicates a check constraint violation.
	CheckViolationCode = "23514"
)

// Constraint names the repositories discriminate on. They must match the
// migrations; matching on constraint name rather than the human-readable
// message keeps translation stable across server versions and locales.
const (
	UniqueEmailConstraint = "unique_email_idx"
	PostUserFKConstraint  = "posts_user_id_fkey"
)

func AsPgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsConstraintViolation reports whether err is a Postgres error with the
// given SQLSTATE code raised by the named constraint.
func IsConstraintViolation(err error, code, constraint string) bool {
	pe, ok := AsPgError(err)
	return ok && pe.Code == code && pe.ConstraintName == constraint
}
