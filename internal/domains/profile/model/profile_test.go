package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbtrain-backend/internal/shared"
)

func intPtr(i int) *int { return &i }

func TestCreateProfileRequest(t *testing.T) {
	authorID := uuid.New()

	t.Run("stage defaults to zero", func(t *testing.T) {
		req := CreateProfileRequest{}
		require.NoError(t, req.Validate())

		p := req.ToEntity(authorID)
		assert.Equal(t, authorID, p.AuthorID)
		assert.Equal(t, 0, p.Stage)
	})

	t.Run("explicit stage", func(t *testing.T) {
		req := CreateProfileRequest{Stage: intPtr(6)}
		require.NoError(t, req.Validate())
		assert.Equal(t, 6, req.ToEntity(authorID).Stage)
	})

	t.Run("negative stage rejected", func(t *testing.T) {
		err := CreateProfileRequest{Stage: intPtr(-1)}.Validate()

		var fields shared.FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.True(t, fields.Has("stage"))
	})
}

func TestUpdateStageRequest(t *testing.T) {
	assert.NoError(t, UpdateStageRequest{Stage: intPtr(0)}.Validate())

	err := UpdateStageRequest{}.Validate()
	assert.ErrorIs(t, err, shared.ErrValidation)

	err = UpdateStageRequest{Stage: intPtr(-3)}.Validate()
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestProfile_String(t *testing.T) {
	last, first, middle := "Петров", "иван", "Сергеевич"

	p := Profile{Stage: 3, Author: ProfileName{Username: "ivan", LastName: &last, FirstName: &first, MiddleName: &middle}}
	assert.Equal(t, "Автор Петров И.С. Стаж: 3 лет.", p.String())

	p.Author.MiddleName = nil
	assert.Equal(t, "Автор Петров Стаж: 3 лет.", p.String())

	p = Profile{Stage: 0, Author: ProfileName{Username: "ivan"}}
	assert.Equal(t, "Автор ivan Стаж: 0 лет.", p.String())
}
