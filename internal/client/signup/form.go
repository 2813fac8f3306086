package signup

import (
	"context"
	"errors"
	"sync"

	"github.com/looplab/fsm"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
)

// DashboardPath is where a successful sign-up navigates to.
const DashboardPath = "/dashboard"

// SignUpper creates an account from raw form data and returns its token.
type SignUpper interface {
	SignUp(ctx context.Context, form models.SignUpForm) (*models.TokenResponse, error)
}

// LoginSession establishes a session from a freshly issued token.
type LoginSession interface {
	Login(ctx context.Context, token string) error
}

type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

type Form struct {
	auth SignUpper
	sess LoginSession
	nav  Navigator

	// machine serializes state changes; a second submit is rejected by it.
	machine *fsm.FSM

	mu     sync.Mutex
	data   models.SignUpForm
	errMsg string
}

func NewForm(auth SignUpper, sess LoginSession, nav Navigator) *Form {
	return &Form{auth: auth, sess: sess, nav: nav, machine: newStateMachine()}
}

// Set updates a single field by its form name.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data.Set(field, value)
}

// Value returns the current value of a field.
func (f *Form) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, _ := f.data.Get(field)
	return v
}

func (f *Form) State() State {
	return State(f.machine.Current())
}

// Error returns the inline message of the last failed submission, or "".
func (f *Form) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// submission is the value threaded through the pipeline steps.
type submission struct {
	form  models.SignUpForm
	token string
}

type step struct {
	name Step
	run  func(ctx context.Context, s *submission) error
	// message maps the step's error to the inline message.
	message func(err error) string
}

// Submit runs validate, sign up, login and navigate in order, stopping at the
// first failing step. On failure the form returns to StateIdle with an inline
// message and the error is a *StepError. On success the form data is
// discarded and the state is StateDone. A call made while another submission
// is running returns ErrSubmitInProgress and has no effect.
func (f *Form) Submit(ctx context.Context) error {
	if err := transition(f.machine, eventValidate); err != nil {
		if f.State() == StateDone {
			return ErrCompleted
		}
		return ErrSubmitInProgress
	}

	f.mu.Lock()
	f.errMsg = ""
	sub := &submission{form: f.data}
	f.mu.Unlock()

	for _, st := range f.steps() {
		if err := st.run(ctx, sub); err != nil {
			f.fail(st.message(err))
			return &StepError{Step: st.name, Err: err}
		}
	}

	f.mu.Lock()
	f.data = models.SignUpForm{}
	f.mu.Unlock()
	return transition(f.machine, eventComplete)
}

func (f *Form) steps() []step {
	return []step{
		{
			name:    StepValidate,
			run:     f.validate,
			message: validationMessage,
		},
		{
			name: StepSignUp,
			run: func(ctx context.Context, s *submission) error {
				if err := transition(f.machine, eventSubmit); err != nil {
					return err
				}
				resp, err := f.auth.SignUp(ctx, s.form)
				if err != nil {
					return err
				}
				s.token = resp.AccessToken
				return nil
			},
			message: signUpMessage,
		},
		{
			name: StepLogin,
			run: func(ctx context.Context, s *submission) error {
				return f.sess.Login(ctx, s.token)
			},
			message: func(error) string { return MsgLoginFailed },
		},
		{
			name: StepNavigate,
			run: func(ctx context.Context, s *submission) error {
				f.nav.Navigate(DashboardPath)
				return nil
			},
			message: func(error) string { return "" },
		},
	}
}

// validate checks the passwords first, then the field constraints, then that
// the numeric fields parse. Nothing is sent when it fails.
func (f *Form) validate(_ context.Context, s *submission) error {
	if !s.form.PasswordsMatch() {
		return ErrPasswordMismatch
	}
	if err := s.form.CheckConstraints(); err != nil {
		return err
	}
	if _, err := models.NewSignUpPayload(s.form); err != nil {
		return err
	}
	return nil
}

func (f *Form) fail(msg string) {
	f.mu.Lock()
	f.errMsg = msg
	f.mu.Unlock()
	_ = transition(f.machine, eventFail)
}

func validationMessage(err error) string {
	if errors.Is(err, ErrPasswordMismatch) {
		return MsgPasswordMismatch
	}
	return err.Error()
}

// signUpMessage prefers the backend's own detail text.
func signUpMessage(err error) string {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	if detail := client.DetailOf(err); detail != "" {
		return detail
	}
	return MsgSignUpFailed
}
