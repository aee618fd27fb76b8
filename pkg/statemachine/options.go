package statemachine

// Option configures a Machine during construction.
type Option[S, E comparable] func(*Machine[S, E]) error

// TransitionOption attaches guards or actions to a single transition.
type TransitionOption[S, E comparable] func(*Transition[S, E])

// WithTransition adds a from -> to transition on event.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		t := Transition[S, E]{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		m.AddTransition(t)
		return nil
	}
}

// WithTransitions adds several prepared transitions.
func WithTransitions[S, E comparable](ts ...Transition[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		for _, t := range ts {
			m.AddTransition(t)
		}
		return nil
	}
}

// WithListener registers a listener at construction time.
func WithListener[S, E comparable](l Listener[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		if l == nil {
			return ErrNilListener
		}
		m.OnTransition(l)
		return nil
	}
}

func WithGuard[S, E comparable](guard Guard[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if guard != nil {
			t.Guards = append(t.Guards, guard)
		}
	}
}

func WithAction[S, E comparable](action Action[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if action != nil {
			t.Actions = append(t.Actions, action)
		}
	}
}
