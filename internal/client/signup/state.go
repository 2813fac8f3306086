package signup

import (
	"context"

	"github.com/looplab/fsm"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateDone       State = "done"
)

const (
	eventValidate = "validate"
	eventSubmit   = "submit"
	eventFail     = "fail"
	eventComplete = "complete"
)

// newStateMachine returns the view's lifecycle:
//
//	idle -validate-> validating -submit-> submitting -complete-> done
//	validating, submitting -fail-> idle
func newStateMachine() *fsm.FSM {
	return fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: eventValidate, Src: []string{string(StateIdle)}, Dst: string(StateValidating)},
			{Name: eventSubmit, Src: []string{string(StateValidating)}, Dst: string(StateSubmitting)},
			{Name: eventFail, Src: []string{string(StateValidating), string(StateSubmitting)}, Dst: string(StateIdle)},
			{Name: eventComplete, Src: []string{string(StateSubmitting)}, Dst: string(StateDone)},
		},
		fsm.Callbacks{},
	)
}

// transition fires event. The machine has no callbacks, so the caller's
// context is not needed.
func transition(m *fsm.FSM, event string) error {
	return m.Event(context.Background(), event)
}
