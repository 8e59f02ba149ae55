package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dbtrain-backend/internal/shared"
)

func TestTag_String(t *testing.T) {
	assert.Equal(t, "#Кино", Tag{Name: "Кино"}.String())
}

func TestCreateTagRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"ok", "Музыка", false},
		{"trimmed blank", "   ", true},
		{"fifty cyrillic runes", strings.Repeat("ж", 50), false},
		{"too long", strings.Repeat("a", 51), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateTagRequest{Name: tt.input}
			req.Normalize()
			err := req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
