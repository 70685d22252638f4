package models

import (
	"fmt"
	"strings"
)

// Gender is the gender filter of the location views
type Gender string

const (
	GenderNone   Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Genders lists the values offered by the #gender dropdown
var Genders = []Gender{GenderMale, GenderFemale}

// ParseGender accepts "", "male" or "female" in any case
func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case GenderNone, GenderMale, GenderFemale:
		return g, nil
	default:
		return GenderNone, fmt.Errorf("%w: %q", ErrInvalidGender, s)
	}
}

// Field names one member of a Selection
type Field string

const (
	FieldSubject Field = "subject"
	FieldPeriod  Field = "period"
	FieldGender  Field = "gender"
)

// Selection is the filter tuple a dashboard view is drawn for
type Selection struct {
	SubjectID string `json:"user_id,omitempty"`
	PeriodKey string `json:"period,omitempty"`
	Gender    Gender `json:"gender,omitempty"`
}

// Has reports whether the given field carries a value
func (s Selection) Has(f Field) bool {
	switch f {
	case FieldSubject:
		return s.SubjectID != ""
	case FieldPeriod:
		return s.PeriodKey != ""
	case FieldGender:
		return s.Gender != GenderNone
	}
	return false
}

// User is one entry of the /api/v1/users listing
type User struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

// UserDetails is returned by /api/v1/users/{id}
type UserDetails struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Period is one entry of the /api/v1/presence_location_view listing
type Period struct {
	Key string `json:"key"`
	Val string `json:"val"`
}
