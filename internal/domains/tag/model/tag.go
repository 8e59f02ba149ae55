package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"dbtrain-backend/internal/shared"
)

const MaxNameLength = 50

// Tag labels entries; names are not unique
type Tag struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// String renders the tag as "#name"
func (t Tag) String() string {
	return "#" + t.Name
}

var ErrTagNotFound = &shared.NotFoundError{Entity: "tag"}

// CreateTagRequest - POST /api/v1/tags
type CreateTagRequest struct {
	Name string `json:"name"`
}

func (r *CreateTagRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r CreateTagRequest) Validate() error {
	return shared.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
	))
}
