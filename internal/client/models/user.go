// Package models defines the client-side data shapes exchanged with the
// fittrack backend and the sign-up form.
package models

import "strings"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

type Goal string

const (
	GoalCut      Goal = "cut"
	GoalBulk     Goal = "bulk"
	GoalMaintain Goal = "maintain"
)

// Genders, ExperienceLevels and Goals list the accepted values in display order.
var (
	Genders          = []Gender{GenderMale, GenderFemale, GenderOther}
	ExperienceLevels = []ExperienceLevel{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
	Goals            = []Goal{GoalCut, GoalBulk, GoalMaintain}
)

// CatalogItem is an equipment or injury entry offered by the backend.
type CatalogItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Profile is the fitness profile attached to a user account.
type Profile struct {
	ID              int64           `json:"id,omitempty"`
	UserID          int64           `json:"user_id,omitempty"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	BirthDate       string          `json:"birth_date"`
	Gender          Gender          `json:"gender"`
	HeightCm        float64         `json:"height_cm"`
	WeightKg        float64         `json:"weight_kg"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Goal            Goal            `json:"goal"`
	Frequency       int             `json:"frequency"`
	Equipment       []CatalogItem   `json:"equipment,omitempty"`
	Injuries        []CatalogItem   `json:"injuries,omitempty"`
}

// User is the identity returned by GET /auth/me.
type User struct {
	ID      int64    `json:"id"`
	Email   string   `json:"email"`
	Profile *Profile `json:"profile,omitempty"`
}

// DisplayName prefers the profile's full name and falls back to the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Profile != nil {
		if name := strings.TrimSpace(u.Profile.FirstName + " " + u.Profile.LastName); name != "" {
			return name
		}
	}
	return u.Email
}

// TokenResponse is the body returned by the sign-up and sign-in endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}
