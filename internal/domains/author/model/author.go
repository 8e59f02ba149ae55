package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gender values accepted by the authors.gender column
const (
	GenderFemale = "ж"
	GenderMale   = "м"
)

// Author is a registered content author
type Author struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Username    string           `json:"username" db:"username"`
	Email       string           `json:"email" db:"email"`
	FirstName   *string          `json:"first_name" db:"first_name"`
	LastName    *string          `json:"last_name" db:"last_name"`
	MiddleName  *string          `json:"middle_name" db:"middle_name"`
	Gender      *string          `json:"gender" db:"gender"`
	SelfEsteem  *decimal.Decimal `json:"self_esteem" db:"self_esteem"`
	PhoneNumber *string          `json:"phone_number" db:"phone_number"`
	City        *string          `json:"city" db:"city"`
	Bio         *string          `json:"bio" db:"bio"`
	Age         *int             `json:"age" db:"age"` // derived from DateBirth on every save
	DateBirth   *time.Time       `json:"date_birth" db:"date_birth"`
	StatusRule  bool             `json:"status_rule" db:"status_rule"`
	Image       *string          `json:"image" db:"image"` // object key in asset storage
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// ComputeAge returns full years between birth and today.
// One year is subtracted while this year's birthday has not been reached.
func ComputeAge(today, birth time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// RecomputeAge refreshes Age from DateBirth; no birth date clears Age
func (a *Author) RecomputeAge(now time.Time) {
	if a.DateBirth == nil {
		a.Age = nil
		return
	}
	age := ComputeAge(now, *a.DateBirth)
	a.Age = &age
}

// DisplayName renders "username (Last F.M.)"; initials only when first and middle name are both set
func (a *Author) DisplayName() string {
	var parts []string
	if nonEmpty(a.LastName) {
		parts = append(parts, *a.LastName)
	}
	if initials := Initials(a.FirstName, a.MiddleName); initials != "" {
		parts = append(parts, initials)
	}

	if len(parts) == 0 {
		return a.Username
	}
	return fmt.Sprintf("%s (%s)", a.Username, strings.Join(parts, " "))
}

// Initials renders "И.И." from first and middle name, or "" unless both are set
func Initials(first, middle *string) string {
	if !nonEmpty(first) || !nonEmpty(middle) {
		return ""
	}
	return fmt.Sprintf("%s.%s.", firstLetter(*first), firstLetter(*middle))
}

func (a *Author) HasPhone() bool {
	return nonEmpty(a.PhoneNumber)
}

func (a *Author) HasImage() bool {
	return nonEmpty(a.Image)
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

func firstLetter(s string) string {
	for _, r := range s {
		return strings.ToUpper(string(r))
	}
	return ""
}
