package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	tagModel "dbtrain-backend/internal/domains/tag/model"
	"dbtrain-backend/internal/shared"
)

// PreviewLength is the number of runes of text shown by Preview
const PreviewLength = 25

// Entry is a piece of content written by an author
type Entry struct {
	ID             uuid.UUID      `json:"id"`
	AuthorID       uuid.UUID      `json:"author_id"`
	AuthorUsername string         `json:"author_username"`
	Text           string         `json:"text"`
	Tags           []tagModel.Tag `json:"tags"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Preview renders "username - <first 25 runes of text>"
func (e *Entry) Preview() string {
	text := e.Text
	if runes := []rune(text); len(runes) > PreviewLength {
		text = string(runes[:PreviewLength])
	}
	return e.AuthorUsername + " - " + text
}

// HasTag reports whether the entry carries a tag with the given name
func (e *Entry) HasTag(name string) bool {
	for _, t := range e.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

var (
	ErrEntryNotFound    = &shared.NotFoundError{Entity: "entry"}
	ErrEntryTagNotFound = &shared.NotFoundError{Entity: "entry tag"}
)

// CreateEntryRequest - POST /api/v1/authors/:id/entries
type CreateEntryRequest struct {
	Text   string      `json:"text"`
	TagIDs []uuid.UUID `json:"tag_ids,omitempty"`
}

func (r CreateEntryRequest) Validate() error {
	return shared.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.By(notBlank)),
		validation.Field(&r.TagIDs, validation.Each(validation.By(notNilUUID))),
	))
}

// AttachTagsRequest - POST /api/v1/entries/:id/tags
type AttachTagsRequest struct {
	TagIDs []uuid.UUID `json:"tag_ids"`
}

func (r AttachTagsRequest) Validate() error {
	return shared.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.TagIDs,
			validation.Required.Error("at least one tag is required"),
			validation.Each(validation.By(notNilUUID)),
		),
	))
}

// EntryFilter - pagination of GET /api/v1/authors/:id/entries
type EntryFilter struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (f *EntryFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// UniqueIDs drops duplicates while keeping the first occurrence order
func UniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
}

func notNilUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_uuid_nil", "must be a non-nil UUID")
	}
	return nil
}
