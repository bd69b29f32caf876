package database

import (
	"errors"
	"strings"

	"chirp/internal/core/apperr"

	"gorm.io/gorm"
)

// translateError maps gorm failures onto the apperr taxonomy; what names the entity.
func translateError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(what)
	case isDuplicateKey(err):
		return apperr.Conflict(what + " already exists")
	}
	return err
}

// isDuplicateKey also matches raw driver messages for dialectors opened without TranslateError.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
