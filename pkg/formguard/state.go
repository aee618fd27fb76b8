package formguard

import (
	"github.com/alzentdigital/website/pkg/statemachine"
)

// State is the lifecycle stage of a guarded form.
type State string

const (
	StateUnarmed    State = "unarmed"
	StateArmed      State = "armed"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// Event drives State transitions.
type Event string

const (
	EventArm     Event = "arm"
	EventSubmit  Event = "submit"
	EventAbort   Event = "abort"
	EventRetry   Event = "retry"
	EventSucceed Event = "succeed"
	EventFail    Event = "fail"
)

// newMachine builds the form lifecycle:
//
//	unarmed|armed|success|failed --arm--> armed
//	armed --submit--> submitting
//	submitting --abort--> armed        (a gate rejected the submission)
//	submitting --retry--> submitting   (scheduled resend of the same payload)
//	submitting --succeed--> success
//	submitting --fail--> failed
func newMachine(listener statemachine.Listener[State, Event]) (*statemachine.Machine[State, Event], error) {
	opts := []statemachine.Option[State, Event]{
		statemachine.WithTransition[State, Event](StateUnarmed, StateArmed, EventArm),
		statemachine.WithTransition[State, Event](StateArmed, StateArmed, EventArm),
		statemachine.WithTransition[State, Event](StateSuccess, StateArmed, EventArm),
		statemachine.WithTransition[State, Event](StateFailed, StateArmed, EventArm),
		statemachine.WithTransition[State, Event](StateArmed, StateSubmitting, EventSubmit),
		statemachine.WithTransition[State, Event](StateSubmitting, StateArmed, EventAbort),
		statemachine.WithTransition[State, Event](StateSubmitting, StateSubmitting, EventRetry),
		statemachine.WithTransition[State, Event](StateSubmitting, StateSuccess, EventSucceed),
		statemachine.WithTransition[State, Event](StateSubmitting, StateFailed, EventFail),
	}
	if listener != nil {
		opts = append(opts, statemachine.WithListener(listener))
	}
	return statemachine.New(StateUnarmed, opts...)
}
