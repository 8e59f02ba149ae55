package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dbtrain-backend/internal/shared"
)

// CreateAuthorRequest - POST /v1/authors
type CreateAuthorRequest struct {
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	FirstName   *string          `json:"first_name,omitempty"`
	LastName    *string          `json:"last_name,omitempty"`
	MiddleName  *string          `json:"middle_name,omitempty"`
	Gender      *string          `json:"gender,omitempty"`
	SelfEsteem  *decimal.Decimal `json:"self_esteem,omitempty"`
	PhoneNumber *string          `json:"phone_number,omitempty"`
	City        *string          `json:"city,omitempty"`
	Bio         *string          `json:"bio,omitempty"`
	DateBirth   *string          `json:"date_birth,omitempty"` // YYYY-MM-DD
	StatusRule  *bool            `json:"status_rule"`          // required, no default
}

// Validate checks every field rule; today bounds date_birth
func (r CreateAuthorRequest) Validate(today time.Time) error {
	return shared.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Username, append([]validation.Rule{validation.Required}, UsernameRules()...)...),
		validation.Field(&r.Email,
			validation.Required,
			validation.RuneLength(0, MaxEmailLength),
			is.EmailFormat.Error("must be a valid email address"),
		),
		validation.Field(&r.FirstName, NameRules()...),
		validation.Field(&r.LastName, NameRules()...),
		validation.Field(&r.MiddleName, NameRules()...),
		validation.Field(&r.Gender, GenderRules()...),
		validation.Field(&r.SelfEsteem, SelfEsteemRule),
		validation.Field(&r.PhoneNumber, PhoneRules()...),
		validation.Field(&r.City, CityRules()...),
		validation.Field(&r.DateBirth, dateBirthRule(today)),
		validation.Field(&r.StatusRule, validation.NotNil.Error("is required")),
	))
}

// Normalize trims surrounding whitespace and turns blank optionals into nil
func (r *CreateAuthorRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = trimOptional(r.FirstName)
	r.LastName = trimOptional(r.LastName)
	r.MiddleName = trimOptional(r.MiddleName)
	r.Gender = trimOptional(r.Gender)
	r.PhoneNumber = trimOptional(r.PhoneNumber)
	r.City = trimOptional(r.City)
	r.DateBirth = trimOptional(r.DateBirth)
}

// ToEntity converts a validated request into an Author; age is not set here
func (r *CreateAuthorRequest) ToEntity() *Author {
	a := &Author{
		Username:    r.Username,
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		MiddleName:  r.MiddleName,
		Gender:      r.Gender,
		SelfEsteem:  r.SelfEsteem,
		PhoneNumber: r.PhoneNumber,
		City:        r.City,
		Bio:         r.Bio,
		DateBirth:   parseDate(r.DateBirth),
	}
	if r.StatusRule != nil {
		a.StatusRule = *r.StatusRule
	}
	return a
}

// UpdateAuthorRequest - PATCH /v1/authors/:id
// Nil fields are left unchanged.
type UpdateAuthorRequest struct {
	Username    *string          `json:"username,omitempty"`
	Email       *string          `json:"email,omitempty"`
	FirstName   *string          `json:"first_name,omitempty"`
	LastName    *string          `json:"last_name,omitempty"`
	MiddleName  *string          `json:"middle_name,omitempty"`
	Gender      *string          `json:"gender,omitempty"`
	SelfEsteem  *decimal.Decimal `json:"self_esteem,omitempty"`
	PhoneNumber *string          `json:"phone_number,omitempty"`
	City        *string          `json:"city,omitempty"`
	Bio         *string          `json:"bio,omitempty"`
	DateBirth   *string          `json:"date_birth,omitempty"`
	StatusRule  *bool            `json:"status_rule,omitempty"`
}

func (r UpdateAuthorRequest) Validate(today time.Time) error {
	return shared.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Username, append([]validation.Rule{validation.NilOrNotEmpty}, UsernameRules()...)...),
		validation.Field(&r.Email,
			validation.NilOrNotEmpty,
			validation.RuneLength(0, MaxEmailLength),
			is.EmailFormat.Error("must be a valid email address"),
		),
		validation.Field(&r.FirstName, NameRules()...),
		validation.Field(&r.LastName, NameRules()...),
		validation.Field(&r.MiddleName, NameRules()...),
		validation.Field(&r.Gender, GenderRules()...),
		validation.Field(&r.SelfEsteem, SelfEsteemRule),
		validation.Field(&r.PhoneNumber, PhoneRules()...),
		validation.Field(&r.City, CityRules()...),
		validation.Field(&r.DateBirth, dateBirthRule(today)),
	))
}

func (r *UpdateAuthorRequest) Normalize() {
	r.Username = trimPresent(r.Username)
	r.Email = trimPresent(r.Email)
	r.FirstName = trimPresent(r.FirstName)
	r.LastName = trimPresent(r.LastName)
	r.MiddleName = trimPresent(r.MiddleName)
	r.Gender = trimPresent(r.Gender)
	r.PhoneNumber = trimPresent(r.PhoneNumber)
	r.City = trimPresent(r.City)
	r.DateBirth = trimPresent(r.DateBirth)
}

// ApplyToEntity copies the non-nil fields onto the author.
// An empty string clears an optional field.
func (r *UpdateAuthorRequest) ApplyToEntity(a *Author) {
	if r.Username != nil {
		a.Username = *r.Username
	}
	if r.Email != nil {
		a.Email = *r.Email
	}
	applyOptional(&a.FirstName, r.FirstName)
	applyOptional(&a.LastName, r.LastName)
	applyOptional(&a.MiddleName, r.MiddleName)
	applyOptional(&a.Gender, r.Gender)
	applyOptional(&a.PhoneNumber, r.PhoneNumber)
	applyOptional(&a.City, r.City)
	applyOptional(&a.Bio, r.Bio)
	if r.SelfEsteem != nil {
		a.SelfEsteem = r.SelfEsteem
	}
	if r.DateBirth != nil {
		a.DateBirth = parseDate(r.DateBirth)
	}
	if r.StatusRule != nil {
		a.StatusRule = *r.StatusRule
	}
}

func applyOptional(dst **string, src *string) {
	switch {
	case src == nil:
	case *src == "":
		*dst = nil
	default:
		v := *src
		*dst = &v
	}
}

// AuthorResponse - author as returned by the API
type AuthorResponse struct {
	ID          uuid.UUID        `json:"id"`
	Username    string           `json:"username"`
	DisplayName string           `json:"display_name"`
	Email       string           `json:"email"`
	FirstName   *string          `json:"first_name,omitempty"`
	LastName    *string          `json:"last_name,omitempty"`
	MiddleName  *string          `json:"middle_name,omitempty"`
	Gender      *string          `json:"gender,omitempty"`
	SelfEsteem  *decimal.Decimal `json:"self_esteem,omitempty"`
	PhoneNumber *string          `json:"phone_number,omitempty"`
	City        *string          `json:"city,omitempty"`
	Bio         *string          `json:"bio,omitempty"`
	Age         *int             `json:"age,omitempty"`
	DateBirth   *string          `json:"date_birth,omitempty"`
	StatusRule  bool             `json:"status_rule"`
	Image       *string          `json:"image,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (a *Author) ToResponse() *AuthorResponse {
	resp := &AuthorResponse{
		ID:          a.ID,
		Username:    a.Username,
		DisplayName: a.DisplayName(),
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		MiddleName:  a.MiddleName,
		Gender:      a.Gender,
		SelfEsteem:  a.SelfEsteem,
		PhoneNumber: a.PhoneNumber,
		City:        a.City,
		Bio:         a.Bio,
		Age:         a.Age,
		StatusRule:  a.StatusRule,
		Image:       a.Image,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.DateBirth != nil {
		s := a.DateBirth.Format(DateLayout)
		resp.DateBirth = &s
	}
	return resp
}

// AuthorFilter - query parameters of GET /v1/authors
type AuthorFilter struct {
	Search string `form:"search"` // partial username match
	Gender string `form:"gender"`
	City   string `form:"city"`
	SortBy string `form:"sort_by"`
	Order  string `form:"order"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// Sort columns accepted by AuthorFilter.SortBy
var AllowedSortColumns = map[string]bool{
	"username":   true,
	"age":        true,
	"created_at": true,
	"updated_at": true,
}

// Paging defaults
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ApplyPaging defaults and clamps limit and offset
func (f *AuthorFilter) ApplyPaging() {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Normalize applies defaults, clamps pagination and rejects unknown sort or gender values
func (f *AuthorFilter) Normalize() error {
	f.ApplyPaging()
	if f.SortBy == "" {
		f.SortBy = "created_at"
	}
	if !AllowedSortColumns[f.SortBy] {
		return shared.NewFieldError("sort_by", "unsupported sort column")
	}
	f.Order = strings.ToUpper(f.Order)
	if f.Order != "ASC" && f.Order != "DESC" {
		f.Order = "DESC"
	}
	f.Search = strings.TrimSpace(f.Search)
	f.City = strings.TrimSpace(f.City)
	if f.Gender != "" && f.Gender != GenderFemale && f.Gender != GenderMale {
		return shared.NewFieldError("gender", "must be one of: ж, м")
	}
	return nil
}

func dateBirthRule(today time.Time) validation.Rule {
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return validation.Date(DateLayout).
		Max(end).
		Error("must be a date in format YYYY-MM-DD").
		RangeError("must not be in the future")
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func trimPresent(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
