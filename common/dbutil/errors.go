// Package dbutil classifies storage errors by structured constraint
// information, never by parsing driver message text.
package dbutil

import (
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/sportsbase/roster/pkg/errors"
)

// UniqueViolationCode is the PostgreSQL error code for a unique_violation.
const UniqueViolationCode = "23505"

// ForeignKeyViolationCode is the PostgreSQL error code for a
// foreign_key_violation.
const ForeignKeyViolationCode = "23503"

// IsUniqueViolation reports whether err is a uniqueness-constraint rejection.
// It recognizes the pgconn structured error code and the driver-translated
// gorm sentinel (which covers SQLite when TranslateError is enabled). Other
// integrity failures, foreign-key violations included, are not matched.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolationCode
}

// UniqueConstraint returns the name of the violated unique constraint when
// the driver exposes one, or "" when only the translated sentinel is
// available.
func UniqueConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == UniqueViolationCode {
		return pgErr.ConstraintName
	}
	return ""
}

// WrapError wraps a gorm error into the matching error kind. Errors that are
// neither not-found nor unique violations pass through untouched so integrity
// failures surface as server errors.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errors.Error); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound
	}
	if IsUniqueViolation(err) {
		return errors.Conflict.Explain("duplication of key").Wrap(err)
	}
	return err
}
