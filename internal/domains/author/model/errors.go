package model

import "dbtrain-backend/internal/shared"

var (
	ErrAuthorNotFound = &shared.NotFoundError{Entity: "author"}

	ErrDuplicateUsername = shared.NewFieldError("username", "author with this username already exists")
	ErrDuplicateEmail    = shared.NewFieldError("email", "author with this email already exists")
	ErrDuplicatePhone    = shared.NewFieldError("phone_number", "author with this phone number already exists")

	ErrInvalidImage = shared.NewFieldError("image", "image must be a JPEG or PNG up to 5MB")
)

// UniqueConflicts reports which unique columns are already taken by another author
type UniqueConflicts struct {
	Username bool
	Email    bool
	Phone    bool
}

// Err converts the conflicts into field errors, nil when there are none
func (c UniqueConflicts) Err() error {
	var errs shared.FieldErrors
	if c.Email {
		errs = append(errs, ErrDuplicateEmail)
	}
	if c.Phone {
		errs = append(errs, ErrDuplicatePhone)
	}
	if c.Username {
		errs = append(errs, ErrDuplicateUsername)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
