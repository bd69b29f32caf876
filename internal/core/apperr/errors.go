// Package apperr holds the error taxonomy shared by the services.
// Services wrap one of these sentinels; adapters use errors.Is to map them.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("not allowed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")

	// ErrDuplicateReaction is a conflict: the like or retweet already exists.
	ErrDuplicateReaction = fmt.Errorf("%w: reaction already exists", ErrConflict)
	// ErrReactionNotFound is a not-found: there is no like or retweet to remove.
	ErrReactionNotFound = fmt.Errorf("%w: reaction", ErrNotFound)
)

func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

func Unauthorized(msg string) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
}

func Conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}
