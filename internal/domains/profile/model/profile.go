package model

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	authorModel "dbtrain-backend/internal/domains/author/model"
	"dbtrain-backend/internal/shared"
)

// Profile holds an author's tenure; exactly one per author
type Profile struct {
	ID       uuid.UUID   `json:"id" db:"id"`
	AuthorID uuid.UUID   `json:"author_id" db:"author_id"`
	Stage    int         `json:"stage" db:"stage"` // years of experience
	Author   ProfileName `json:"author"`
}

// ProfileName is the part of the author a profile caption needs
type ProfileName struct {
	Username   string  `json:"username"`
	LastName   *string `json:"last_name,omitempty"`
	FirstName  *string `json:"first_name,omitempty"`
	MiddleName *string `json:"middle_name,omitempty"`
}

// String renders "Автор Петров И.И. Стаж: 3 лет."
// Without a last name the username is used; initials need both first and middle name.
func (p *Profile) String() string {
	name := p.Author.Username
	if p.Author.LastName != nil && *p.Author.LastName != "" {
		name = *p.Author.LastName
	}
	parts := []string{"Автор", name}
	if initials := authorModel.Initials(p.Author.FirstName, p.Author.MiddleName); initials != "" {
		parts = append(parts, initials)
	}
	return fmt.Sprintf("%s Стаж: %d лет.", strings.Join(parts, " "), p.Stage)
}

// DefaultStage is used when a profile is created without a stage
const DefaultStage = 0

var (
	ErrProfileNotFound = &shared.NotFoundError{Entity: "author profile"}
	ErrProfileExists   = shared.NewFieldError("author_id", "author already has a profile")
)

// CreateProfileRequest - POST /api/v1/authors/:id/profile
type CreateProfileRequest struct {
	Stage *int `json:"stage,omitempty"`
}

func (r CreateProfileRequest) Validate() error {
	return shared.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Stage, validation.Min(0).Error("must not be negative")),
	))
}

// ToEntity builds the profile, falling back to DefaultStage
func (r CreateProfileRequest) ToEntity(authorID uuid.UUID) *Profile {
	stage := DefaultStage
	if r.Stage != nil {
		stage = *r.Stage
	}
	return &Profile{AuthorID: authorID, Stage: stage}
}

// UpdateStageRequest - PATCH /api/v1/authors/:id/profile
type UpdateStageRequest struct {
	Stage *int `json:"stage"`
}

func (r UpdateStageRequest) Validate() error {
	return shared.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Stage,
			validation.NotNil.Error("is required"),
			validation.Min(0).Error("must not be negative"),
		),
	))
}
