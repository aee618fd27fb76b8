// Package statemachine implements a small generic finite state machine.
//
// States and events are any comparable types, typically string-based enums:
//
//	type state string
//	type event string
//
//	m := statemachine.MustNew[state, event]("idle",
//		statemachine.WithTransition[state, event]("idle", "running", "start"),
//		statemachine.WithTransition[state, event]("running", "idle", "stop"),
//	)
//	err := m.Fire(ctx, "start", nil)
//
// Transitions may carry guards (all must pass) and actions (run before the
// state changes; an error aborts the transition). Listeners observe completed
// transitions and run outside the machine lock.
package statemachine
