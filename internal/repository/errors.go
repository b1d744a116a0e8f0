package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrVersionConflict signals that an optimistic event update lost the
	// race: the row version changed between read and write.
	ErrVersionConflict = errors.New("event was modified concurrently")

	// ErrDuplicate signals a unique-constraint violation.
	ErrDuplicate = errors.New("duplicate record")
)

// isUniqueViolation recognizes unique-constraint errors from both backends:
// PostgreSQL (pgconn error code 23505) and SQLite (message match, the
// modernc driver exposes no typed error).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
