package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/signup"
)

const dashboardPath = signup.DashboardPath

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// signUpPrompts holds the prompt shown for each sign-up field.
var signUpPrompts = map[string]string{
	models.FieldEmail:           "Email",
	models.FieldPassword:        "Password",
	models.FieldConfirmPassword: "Confirm password",
	models.FieldFirstName:       "First name",
	models.FieldLastName:        "Last name",
	models.FieldBirthDate:       "Birth date (YYYY-MM-DD)",
	models.FieldGender:          "Gender (male, female, other)",
	models.FieldHeight:          "Height, cm",
	models.FieldWeight:          "Weight, kg",
	models.FieldExperience:      "Experience (beginner, intermediate, advanced)",
	models.FieldGoal:            "Goal (cut, bulk, maintain)",
	models.FieldFrequency:       "Training days per week",
}

// SignUp is the sign-up view. It prompts for every form field, then submits
// the form, which creates the account, signs in and navigates to the
// dashboard. Failures are shown inline with the form's message.
func (a *App) SignUp(ctx context.Context) error {
	form := signup.NewForm(a.authService, a.session, signup.NavigatorFunc(a.navigate))

	for _, field := range models.SignUpFields {
		value, err := a.promptField(field)
		if err != nil {
			return err
		}
		if err := form.Set(field, value); err != nil {
			return err
		}
	}

	if err := form.Submit(ctx); err != nil {
		printError(a.out, "%s", form.Error())
		a.logger.Debug(ctx, "sign-up failed", "error", err)
		return err
	}
	return nil
}

func (a *App) promptField(field string) (string, error) {
	prompt := signUpPrompts[field]
	if field != models.FieldPassword && field != models.FieldConfirmPassword {
		return getSimpleText(a.reader, prompt, a.out)
	}

	pw, err := getPassword(prompt, a.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// SignIn prompts for credentials, exchanges them for a token and starts a
// session with it.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}

	resp, err := a.authService.SignIn(ctx, email, string(password))
	if err != nil {
		printError(a.out, "%s", signInMessage(err))
		a.logger.Debug(ctx, "sign-in failed", "error", err)
		return err
	}

	if err := a.session.Login(ctx, resp.AccessToken); err != nil {
		printError(a.out, "Signed in but the profile could not be loaded")
		return err
	}

	a.navigate(dashboardPath)
	return nil
}

func signInMessage(err error) string {
	if detail := client.DetailOf(err); detail != "" {
		return detail
	}
	if errors.Is(err, client.ErrUnavailable) {
		return "Server unavailable"
	}
	return "Sign in failed"
}

// WhoAmI prints the signed-in user and profile.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}

	printField(a.out, "Name", u.DisplayName())
	printField(a.out, "Email", u.Email)
	if sub, err := a.session.Subject(ctx); err == nil && sub != "" {
		printField(a.out, "Subject", sub)
	}
	if p := u.Profile; p != nil {
		printField(a.out, "Born", p.BirthDate)
		printField(a.out, "Gender", p.Gender)
		printField(a.out, "Height", formatFloat(p.HeightCm)+" cm")
		printField(a.out, "Weight", formatFloat(p.WeightKg)+" kg")
		printField(a.out, "Experience", p.ExperienceLevel)
		printField(a.out, "Goal", p.Goal)
		printField(a.out, "Frequency", p.Frequency)
		if len(p.Equipment) > 0 {
			printField(a.out, "Equipment", catalogNames(p.Equipment))
		}
		if len(p.Injuries) > 0 {
			printField(a.out, "Injuries", catalogNames(p.Injuries))
		}
	}
	return nil
}

// Logout forgets the session locally and returns to the home view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		printError(a.out, "Logout failed: %v", err)
		return err
	}
	a.navigate(HomePath)
	printSuccess(a.out, "Signed out")
	return nil
}
