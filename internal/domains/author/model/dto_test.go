package model

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbtrain-backend/internal/shared"
)

var testToday = date(2024, time.June, 15)

func boolPtr(b bool) *bool { return &b }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validCreateRequest() CreateAuthorRequest {
	return CreateAuthorRequest{
		Username:   "ivan-petrov",
		Email:      "ivan@example.com",
		StatusRule: boolPtr(true),
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation), "expected validation error, got %v", err)

	var fields []string
	for _, fe := range shared.ValidationDetails(err) {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestCreateAuthorRequest_Valid(t *testing.T) {
	req := validCreateRequest()
	req.Gender = strPtr(GenderFemale)
	req.SelfEsteem = decPtr("4.5")
	req.PhoneNumber = strPtr("+79123456789")
	req.DateBirth = strPtr("2000-06-20")
	req.FirstName = strPtr("Иван")

	assert.NoError(t, req.Validate(testToday))
}

func TestCreateAuthorRequest_RequiredFields(t *testing.T) {
	req := CreateAuthorRequest{}
	fields := fieldsOf(t, req.Validate(testToday))

	assert.ElementsMatch(t, []string{"email", "status_rule", "username"}, fields)
}

func TestCreateAuthorRequest_StatusRuleFalseIsProvided(t *testing.T) {
	req := validCreateRequest()
	req.StatusRule = boolPtr(false)

	assert.NoError(t, req.Validate(testToday))
}

func TestCreateAuthorRequest_Username(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
	}{
		{"ivan", true},
		{"ivan_petrov-2", true},
		{"иван", false},
		{"ivan petrov", false},
		{"ivan.petrov", false},
		{string(make([]byte, 51)), false},
	}

	for _, tt := range tests {
		req := validCreateRequest()
		req.Username = tt.username
		err := req.Validate(testToday)
		if tt.valid {
			assert.NoError(t, err, tt.username)
		} else {
			assert.Contains(t, fieldsOf(t, err), "username", tt.username)
		}
	}
}

func TestCreateAuthorRequest_Email(t *testing.T) {
	req := validCreateRequest()
	req.Email = "not-an-email"

	assert.Equal(t, []string{"email"}, fieldsOf(t, req.Validate(testToday)))
}

func TestCreateAuthorRequest_SelfEsteem(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"0.0", true},
		{"5.0", true},
		{"2.5", true},
		{"5.1", false},
		{"-0.1", false},
		{"2.55", false},
	}

	for _, tt := range tests {
		req := validCreateRequest()
		req.SelfEsteem = decPtr(tt.value)
		err := req.Validate(testToday)
		if tt.valid {
			assert.NoError(t, err, tt.value)
		} else {
			assert.Equal(t, []string{"self_esteem"}, fieldsOf(t, err), tt.value)
		}
	}
}

func TestCreateAuthorRequest_Phone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+79123456789", true},
		{"+71234567890", false},
		{"89123456789", false},
		{"+7912345678", false},
		{"+791234567890", false},
	}

	for _, tt := range tests {
		req := validCreateRequest()
		req.PhoneNumber = strPtr(tt.phone)
		err := req.Validate(testToday)
		if tt.valid {
			assert.NoError(t, err, tt.phone)
		} else {
			assert.Equal(t, []string{"phone_number"}, fieldsOf(t, err), tt.phone)
		}
	}
}

func TestCreateAuthorRequest_Gender(t *testing.T) {
	req := validCreateRequest()
	req.Gender = strPtr("Ж")

	assert.Equal(t, []string{"gender"}, fieldsOf(t, req.Validate(testToday)))
}

func TestCreateAuthorRequest_DateBirth(t *testing.T) {
	req := validCreateRequest()

	req.DateBirth = strPtr("2024-06-15")
	assert.NoError(t, req.Validate(testToday))

	req.DateBirth = strPtr("2024-06-16")
	assert.Equal(t, []string{"date_birth"}, fieldsOf(t, req.Validate(testToday)))

	req.DateBirth = strPtr("15.06.2000")
	assert.Equal(t, []string{"date_birth"}, fieldsOf(t, req.Validate(testToday)))
}

func TestCreateAuthorRequest_NormalizeAndToEntity(t *testing.T) {
	req := CreateAuthorRequest{
		Username:   "  ivan ",
		Email:      " ivan@example.com",
		City:       strPtr("   "),
		DateBirth:  strPtr("2000-06-20"),
		StatusRule: boolPtr(true),
	}
	req.Normalize()

	a := req.ToEntity()
	assert.Equal(t, "ivan", a.Username)
	assert.Equal(t, "ivan@example.com", a.Email)
	assert.Nil(t, a.City)
	require.NotNil(t, a.DateBirth)
	assert.Equal(t, date(2000, time.June, 20), *a.DateBirth)
	assert.True(t, a.StatusRule)
	assert.Nil(t, a.Age)
}

func TestUpdateAuthorRequest_ValidateAndApply(t *testing.T) {
	empty := ""
	req := UpdateAuthorRequest{Username: &empty}
	assert.Equal(t, []string{"username"}, fieldsOf(t, req.Validate(testToday)))

	req = UpdateAuthorRequest{
		City:       strPtr("Казань"),
		SelfEsteem: decPtr("3.0"),
		StatusRule: boolPtr(false),
	}
	require.NoError(t, req.Validate(testToday))

	a := &Author{Username: "ivan", Email: "ivan@example.com", StatusRule: true}
	req.ApplyToEntity(a)
	assert.Equal(t, "ivan", a.Username)
	assert.Equal(t, "Казань", *a.City)
	assert.True(t, a.SelfEsteem.Equal(decimal.NewFromInt(3)))
	assert.False(t, a.StatusRule)
}

func TestCreateAuthorRequest_NameLengthCountsCharacters(t *testing.T) {
	req := validCreateRequest()
	req.LastName = strPtr(strings.Repeat("Ж", 60))
	req.City = strPtr(strings.Repeat("Ё", MaxCityLength))
	assert.NoError(t, req.Validate(testToday))

	req.LastName = strPtr(strings.Repeat("Ж", MaxNameLength+1))
	req.City = strPtr(strings.Repeat("Ё", MaxCityLength+1))
	assert.ElementsMatch(t, []string{"city", "last_name"}, fieldsOf(t, req.Validate(testToday)))
}

func TestUpdateAuthorRequest_EmptyStringClearsOptional(t *testing.T) {
	req := UpdateAuthorRequest{
		PhoneNumber: strPtr(" "),
		Gender:      strPtr(""),
		City:        strPtr(""),
	}
	req.Normalize()
	require.NoError(t, req.Validate(testToday))

	a := &Author{
		Username:    "ivan",
		Email:       "ivan@example.com",
		PhoneNumber: strPtr("+79123456789"),
		Gender:      strPtr(GenderMale),
		City:        strPtr("Казань"),
		LastName:    strPtr("Петров"),
	}
	req.ApplyToEntity(a)

	assert.Nil(t, a.PhoneNumber)
	assert.Nil(t, a.Gender)
	assert.Nil(t, a.City)
	require.NotNil(t, a.LastName)
	assert.Equal(t, "Петров", *a.LastName)
}

func TestUniqueConflicts_Err(t *testing.T) {
	assert.NoError(t, UniqueConflicts{}.Err())

	err := UniqueConflicts{Username: true, Phone: true}.Err()
	assert.Equal(t, []string{"phone_number", "username"}, fieldsOf(t, err))
}

func TestAuthorFilter_Normalize(t *testing.T) {
	f := AuthorFilter{Limit: 500, Offset: -3, Order: "asc"}
	require.NoError(t, f.Normalize())
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 0, f.Offset)
	assert.Equal(t, "created_at", f.SortBy)
	assert.Equal(t, "ASC", f.Order)

	f = AuthorFilter{SortBy: "password"}
	assert.Error(t, f.Normalize())

	f = AuthorFilter{Gender: "x", City: "  Омск "}
	assert.ErrorIs(t, f.Normalize(), shared.ErrValidation)
	assert.Equal(t, "Омск", f.City)
}

func TestAuthorFilter_ApplyPaging(t *testing.T) {
	f := AuthorFilter{Limit: 500, Offset: -3, SortBy: "unknown"}
	f.ApplyPaging()
	assert.Equal(t, MaxListLimit, f.Limit)
	assert.Equal(t, 0, f.Offset)
	assert.Equal(t, "unknown", f.SortBy)

	f = AuthorFilter{}
	f.ApplyPaging()
	assert.Equal(t, DefaultListLimit, f.Limit)
}

func TestToResponse_FormatsDate(t *testing.T) {
	birth := date(2000, time.June, 20)
	a := &Author{Username: "ivan", DateBirth: &birth}

	resp := a.ToResponse()
	require.NotNil(t, resp.DateBirth)
	assert.Equal(t, "2000-06-20", *resp.DateBirth)
	assert.Equal(t, "ivan", resp.DisplayName)
}
