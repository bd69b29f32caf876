// Package content holds the rule shared by tweets and comments.
package content

import (
	"strings"
	"unicode/utf8"

	"chirp/internal/core/apperr"
)

// MaxLength is counted in runes and matches the varchar(280) columns.
const MaxLength = 280

// Validate rejects blank content and content longer than MaxLength.
func Validate(s string) error {
	if strings.TrimSpace(s) == "" {
		return apperr.Validation("content must not be blank")
	}
	if utf8.RuneCountInString(s) > MaxLength {
		return apperr.Validation("content must be at most 280 characters")
	}
	return nil
}
