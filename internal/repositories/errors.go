package repositories

import (
	"errors"
	"fmt"

	apperrors "propmarket/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

var ErrDuplicate = apperrors.New(apperrors.KindConflict, "DUPLICATE", "record already exists")

// translate maps driver errors onto domain errors. Domain errors pass
// through untouched; anything else is wrapped with op.
func translate(err error, op string, notFound *apperrors.DomainError) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected:
			return apperrors.ErrConcurrentUpdate
		case pgUniqueViolation:
			return ErrDuplicate
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
