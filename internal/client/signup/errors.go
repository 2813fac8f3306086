package signup

import (
	"errors"
	"fmt"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrSubmitInProgress = errors.New("sign-up already in progress")
	ErrCompleted        = errors.New("sign-up already completed")
)

// Messages shown to the user by Form.Error.
const (
	MsgPasswordMismatch = "Passwords do not match"
	MsgSignUpFailed     = "Sign up failed"
	MsgLoginFailed      = "Account created but sign in failed"
)

type Step string

const (
	StepValidate Step = "validate"
	StepSignUp   Step = "sign up"
	StepLogin    Step = "login"
	StepNavigate Step = "navigate"
)

// StepError reports which pipeline step failed. A StepLogin failure means
// the account exists on the backend but no session could be established.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
