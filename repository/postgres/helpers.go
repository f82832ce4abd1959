package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskboard/backend/domain"
)

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

// classifyError maps postgres constraint violations onto domain conflicts so
// handlers can surface 409 instead of a generic server fault.
func classifyError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return domain.WrapError(domain.ErrCodeConflict, "duplicate value for unique field", err)
	case pgFKViolation:
		return domain.WrapError(domain.ErrCodeConflict, "entity is still referenced", err)
	}
	return err
}
