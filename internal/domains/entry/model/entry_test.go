package model

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tagModel "dbtrain-backend/internal/domains/tag/model"
	"dbtrain-backend/internal/shared"
)

func TestEntry_Preview(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short", "Привет", "anna - Привет"},
		{"exactly 25", strings.Repeat("я", 25), "anna - " + strings.Repeat("я", 25)},
		{"cut at 25 runes", strings.Repeat("я", 30), "anna - " + strings.Repeat("я", 25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Entry{AuthorUsername: "anna", Text: tt.text}
			assert.Equal(t, tt.want, e.Preview())
		})
	}
}

func TestEntry_HasTag(t *testing.T) {
	e := Entry{Tags: []tagModel.Tag{{Name: "Кино"}}}
	assert.True(t, e.HasTag("Кино"))
	assert.False(t, e.HasTag("кино"))
}

func TestCreateEntryRequest_Validate(t *testing.T) {
	assert.NoError(t, CreateEntryRequest{Text: "hello"}.Validate())
	assert.NoError(t, CreateEntryRequest{Text: "hello", TagIDs: []uuid.UUID{uuid.New()}}.Validate())

	err := CreateEntryRequest{Text: "   "}.Validate()
	var fields shared.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.True(t, fields.Has("text"))

	err = CreateEntryRequest{Text: "ok", TagIDs: []uuid.UUID{uuid.Nil}}.Validate()
	require.ErrorAs(t, err, &fields)
	assert.True(t, fields.Has("tag_ids"))
}

func TestAttachTagsRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, AttachTagsRequest{}.Validate(), shared.ErrValidation)
	assert.NoError(t, AttachTagsRequest{TagIDs: []uuid.UUID{uuid.New()}}.Validate())
}

func TestUniqueIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, []uuid.UUID{a, b}, UniqueIDs([]uuid.UUID{a, b, a, b}))
	assert.Empty(t, UniqueIDs(nil))
}

func TestEntryFilter_Normalize(t *testing.T) {
	f := EntryFilter{Limit: 500, Offset: -2}
	f.Normalize()
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 0, f.Offset)
}
