package model

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Field limits of the authors table
const (
	MaxUsernameLength = 50
	MaxEmailLength    = 254
	MaxNameLength     = 100
	MaxCityLength     = 100
	DateLayout        = "2006-01-02"
)

var (
	slugRegex  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	phoneRegex = regexp.MustCompile(`^\+79\d{9}$`)

	MinSelfEsteem = decimal.Zero
	MaxSelfEsteem = decimal.NewFromInt(5)
)

// UsernameRules: slug syntax, at most 50 characters
func UsernameRules() []validation.Rule {
	return []validation.Rule{
		validation.Length(1, MaxUsernameLength),
		validation.Match(slugRegex).Error("must contain only latin letters, digits, '-' or '_'"),
	}
}

// NameRules and CityRules limit characters, not bytes
func NameRules() []validation.Rule {
	return []validation.Rule{validation.RuneLength(0, MaxNameLength)}
}

func CityRules() []validation.Rule {
	return []validation.Rule{validation.RuneLength(0, MaxCityLength)}
}

func GenderRules() []validation.Rule {
	return []validation.Rule{
		validation.In(GenderFemale, GenderMale).Error("must be 'ж' or 'м'"),
	}
}

// PhoneRules: +79XXXXXXXXX
func PhoneRules() []validation.Rule {
	return []validation.Rule{
		validation.Match(phoneRegex).Error("must match the format +79123456789"),
	}
}

// SelfEsteemRule accepts nil or a decimal in [0.0, 5.0] with at most one fractional digit
var SelfEsteemRule = validation.By(func(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	case decimal.Decimal:
		d = v
	default:
		return errors.New("must be a decimal number")
	}
	return ValidateSelfEsteem(d)
})

// ValidateSelfEsteem is the pure range/precision check behind SelfEsteemRule
func ValidateSelfEsteem(d decimal.Decimal) error {
	if d.LessThan(MinSelfEsteem) || d.GreaterThan(MaxSelfEsteem) {
		return errors.New("must be in range [0.0, 5.0]")
	}
	if !d.Equal(d.Truncate(1)) {
		return errors.New("must have at most one decimal place")
	}
	return nil
}
