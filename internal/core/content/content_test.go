package content

import (
	"errors"
	"strings"
	"testing"

	"chirp/internal/core/apperr"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "hello", false},
		{"exactly max", strings.Repeat("a", MaxLength), false},
		{"max in multibyte runes", strings.Repeat("ş", MaxLength), false},
		{"one over max", strings.Repeat("a", MaxLength+1), true},
		{"empty", "", true},
		{"whitespace only", " \t\n ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, apperr.ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
