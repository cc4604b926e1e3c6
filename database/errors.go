package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the PostgreSQL error code for a unique-constraint
// violation (class 23, integrity constraint).
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint violation
// from the store. The constraint itself is the source of truth for the
// duplicate checks in this service; any pre-check in a handler is only a
// friendlier error path, so callers must run every ledger insert error
// through this translation instead of surfacing it raw.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	// The sqlite driver used in tests wraps the violation in a plain
	// message instead of a typed error.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// UniqueViolationOn reports whether err is a unique violation of the named
// constraint. Each conflict error in the API (order conflict, duplicate
// enrollment, duplicate completion) maps to exactly one constraint, so
// handlers can tell the causes apart.
func UniqueViolationOn(err error, constraint string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraint
	}

	// sqlite (tests) names the violated columns rather than the index.
	// Every table in this schema carries a single unique constraint, so
	// any unique violation raised by the insert is the named one.
	return IsUniqueViolation(err)
}
