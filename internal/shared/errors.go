package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrValidation matches every field-level validation failure via errors.Is
	ErrValidation = errors.New("validation failed")

	// ErrNotFound matches every missing-entity error via errors.Is
	ErrNotFound = errors.New("not found")
)

// FieldError reports a single field that failed a format, range or uniqueness rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// FieldErrors groups several field failures from one request, sorted by field name
type FieldErrors []*FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether the given field is among the failures
func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

// FromValidation converts ozzo-validation output into FieldErrors.
// Internal rule errors (a misconfigured rule) are returned unchanged.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(FieldErrors, 0, len(verrs))
	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		out = append(out, NewFieldError(field, ferr.Error()))
	}
	if len(out) == 0 {
		return nil
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// ValidationDetails flattens any validation error into a list for API responses
func ValidationDetails(err error) []*FieldError {
	var list FieldErrors
	if errors.As(err, &list) {
		return list
	}
	var single *FieldError
	if errors.As(err, &single) {
		return []*FieldError{single}
	}
	return nil
}

// NotFoundError reports a missing entity by name
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
