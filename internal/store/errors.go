package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lawhearing/backend/internal/identity"
)

var (
	// ErrInvalidSession re-exports the identity precondition failure so
	// callers can match on a single package.
	ErrInvalidSession = identity.ErrInvalidSession

	// ErrTargetNotFound means the section or question id does not exist.
	ErrTargetNotFound = errors.New("target not found")

	// ErrConstraintViolation surfacing to a caller means an upsert was
	// not pushed down to the database's conflict primitive. It is a bug,
	// not a retryable condition.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrStorageUnavailable is transient; callers may retry with backoff.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// classify maps gorm errors onto the store taxonomy.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrTargetNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConstraintViolation
	default:
		return ErrStorageUnavailable
	}
}
