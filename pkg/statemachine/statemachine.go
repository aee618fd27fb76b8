package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Action runs during a transition, before the state changes.
// Returning an error aborts the transition. Actions run while the machine
// is locked and must not call back into it.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Guard decides at runtime whether a transition may proceed.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Listener observes completed transitions.
type Listener[S, E comparable] func(ctx context.Context, from, to S, event E)

// Transition moves the machine from From to To when Event fires.
type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]  // all must pass
	Actions []Action[S, E] // run in order
}

type key[S, E comparable] struct {
	from  S
	event E
}

// Machine is a thread-safe finite state machine over comparable states and events.
type Machine[S, E comparable] struct {
	mu          sync.RWMutex
	initial     S
	current     S
	transitions map[key[S, E]][]Transition[S, E]
	listeners   []Listener[S, E]
}

// New returns a machine in initial with the given options applied.
func New[S, E comparable](initial S, opts ...Option[S, E]) (*Machine[S, E], error) {
	m := &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[key[S, E]][]Transition[S, E]),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is New that panics on a configuration error.
func MustNew[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("statemachine: %v", err))
	}
	return m
}

func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is currently in state.
func (m *Machine[S, E]) Is(state S) bool {
	return m.Current() == state
}

// AddTransition registers t. Several transitions may share a from/event pair;
// the first whose guards pass wins.
func (m *Machine[S, E]) AddTransition(t Transition[S, E]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key[S, E]{from: t.From, event: t.Event}
	m.transitions[k] = append(m.transitions[k], t)
}

// OnTransition registers a listener called after every successful transition.
func (m *Machine[S, E]) OnTransition(l Listener[S, E]) {
	if l == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Fire applies event to the current state.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()

	from := m.current
	candidates, ok := m.transitions[key[S, E]{from: from, event: event}]
	if !ok || len(candidates) == 0 {
		m.mu.Unlock()
		return &NoTransitionError{State: fmt.Sprint(from), Event: fmt.Sprint(event)}
	}

	t := m.pick(ctx, candidates, from, event, data)
	if t == nil {
		m.mu.Unlock()
		return &RejectedError{State: fmt.Sprint(from), Event: fmt.Sprint(event)}
	}

	for _, action := range t.Actions {
		if err := action(ctx, from, t.To, event, data); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("%w: %w", ErrActionFailed, err)
		}
	}

	m.current = t.To
	listeners := m.listeners
	m.mu.Unlock()

	for _, l := range listeners {
		l(ctx, from, t.To, event)
	}
	return nil
}

// CanFire reports whether event would currently be accepted.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	candidates := m.transitions[key[S, E]{from: m.current, event: event}]
	return m.pick(ctx, candidates, m.current, event, data) != nil
}

func (m *Machine[S, E]) pick(ctx context.Context, candidates []Transition[S, E], from S, event E, data any) *Transition[S, E] {
	for i := range candidates {
		passed := true
		for _, guard := range candidates[i].Guards {
			if !guard(ctx, from, event, data) {
				passed = false
				break
			}
		}
		if passed {
			return &candidates[i]
		}
	}
	return nil
}

// Reset returns the machine to its initial state without running actions.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}
