package models

import (
	"fmt"
	"math"
	"net/mail"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Sign-up form field names, as used by Set and in ValidationError.Field.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldBirthDate       = "birthDate"
	FieldGender          = "gender"
	FieldHeight          = "height"
	FieldWeight          = "weight"
	FieldExperience      = "experience"
	FieldGoal            = "goal"
	FieldFrequency       = "frequency"
)

// SignUpFields lists every form field in the order the form presents them.
var SignUpFields = []string{
	FieldEmail, FieldPassword, FieldConfirmPassword,
	FieldFirstName, FieldLastName, FieldBirthDate, FieldGender,
	FieldHeight, FieldWeight, FieldExperience, FieldGoal, FieldFrequency,
}

const birthDateLayout = "2006-01-02"

// SignUpForm is the raw, flat input of the sign-up view. Numeric fields stay
// strings until NewSignUpPayload parses them.
type SignUpForm struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	BirthDate       string
	Gender          string
	Height          string
	Weight          string
	Experience      string
	Goal            string
	Frequency       string
}

func (f *SignUpForm) field(name string) (*string, bool) {
	switch name {
	case FieldEmail:
		return &f.Email, true
	case FieldPassword:
		return &f.Password, true
	case FieldConfirmPassword:
		return &f.ConfirmPassword, true
	case FieldFirstName:
		return &f.FirstName, true
	case FieldLastName:
		return &f.LastName, true
	case FieldBirthDate:
		return &f.BirthDate, true
	case FieldGender:
		return &f.Gender, true
	case FieldHeight:
		return &f.Height, true
	case FieldWeight:
		return &f.Weight, true
	case FieldExperience:
		return &f.Experience, true
	case FieldGoal:
		return &f.Goal, true
	case FieldFrequency:
		return &f.Frequency, true
	}
	return nil, false
}

// Set assigns one field by name.
func (f *SignUpForm) Set(name, value string) error {
	p, ok := f.field(name)
	if !ok {
		return fmt.Errorf("unknown sign-up field %q", name)
	}
	*p = value
	return nil
}

// Get returns one field by name.
func (f *SignUpForm) Get(name string) (string, bool) {
	p, ok := f.field(name)
	if !ok {
		return "", false
	}
	return *p, true
}

// PasswordsMatch reports whether Password equals ConfirmPassword.
func (f *SignUpForm) PasswordsMatch() bool {
	return f.Password == f.ConfirmPassword
}

// CheckConstraints applies the per-field input constraints: every field is
// required, the email must be a bare address, the birth date must be
// YYYY-MM-DD and the choice fields must hold one of their options. Numeric
// parsing is left to NewSignUpPayload. The first failing field is reported.
func (f *SignUpForm) CheckConstraints() error {
	for _, name := range SignUpFields {
		v, _ := f.Get(name)
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Field: name, Msg: "is required"}
		}
	}

	if addr, err := mail.ParseAddress(f.Email); err != nil || addr.Address != strings.TrimSpace(f.Email) {
		return &ValidationError{Field: FieldEmail, Msg: "must be a valid email address"}
	}
	if _, err := time.Parse(birthDateLayout, f.BirthDate); err != nil {
		return &ValidationError{Field: FieldBirthDate, Msg: "must be a date in YYYY-MM-DD format"}
	}
	if !slices.Contains(Genders, Gender(f.Gender)) {
		return &ValidationError{Field: FieldGender, Msg: fmt.Sprintf("must be one of %v", Genders)}
	}
	if !slices.Contains(ExperienceLevels, ExperienceLevel(f.Experience)) {
		return &ValidationError{Field: FieldExperience, Msg: fmt.Sprintf("must be one of %v", ExperienceLevels)}
	}
	if !slices.Contains(Goals, Goal(f.Goal)) {
		return &ValidationError{Field: FieldGoal, Msg: fmt.Sprintf("must be one of %v", Goals)}
	}
	return nil
}

// Credentials is the account part of the sign-up payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileCreate is the profile part of the sign-up payload.
type ProfileCreate struct {
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	BirthDate       string          `json:"birth_date"`
	Gender          Gender          `json:"gender"`
	HeightCm        float64         `json:"height_cm"`
	WeightKg        float64         `json:"weight_kg"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Goal            Goal            `json:"goal"`
	Frequency       int             `json:"frequency"`
	EquipmentIDs    []int64         `json:"equipment_ids"`
	InjuryIDs       []int64         `json:"injury_ids"`
}

// SignUpPayload is the body of POST /auth/sign-up.
type SignUpPayload struct {
	User    Credentials   `json:"user"`
	Profile ProfileCreate `json:"profile"`
}

// NewSignUpPayload restructures a form into the backend's nested shape.
// Height and weight are parsed as floats and frequency as an integer; a value
// that does not parse yields a *ValidationError. The equipment and injury
// lists are always present and empty.
func NewSignUpPayload(f SignUpForm) (SignUpPayload, error) {
	height, err := parseFloatField(FieldHeight, f.Height)
	if err != nil {
		return SignUpPayload{}, err
	}
	weight, err := parseFloatField(FieldWeight, f.Weight)
	if err != nil {
		return SignUpPayload{}, err
	}
	frequency, err := strconv.Atoi(strings.TrimSpace(f.Frequency))
	if err != nil {
		return SignUpPayload{}, &ValidationError{Field: FieldFrequency, Msg: "must be a whole number"}
	}

	return SignUpPayload{
		User: Credentials{
			Email:    f.Email,
			Password: f.Password,
		},
		Profile: ProfileCreate{
			FirstName:       f.FirstName,
			LastName:        f.LastName,
			BirthDate:       f.BirthDate,
			Gender:          Gender(f.Gender),
			HeightCm:        height,
			WeightKg:        weight,
			ExperienceLevel: ExperienceLevel(f.Experience),
			Goal:            Goal(f.Goal),
			Frequency:       frequency,
			EquipmentIDs:    []int64{},
			InjuryIDs:       []int64{},
		},
	}, nil
}

func parseFloatField(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: name, Msg: "must be a number"}
	}
	return v, nil
}
