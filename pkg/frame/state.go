package frame

import "github.com/pkg/errors"

// State represents the lifecycle of a decode context. Transitions are
// monotonic; there is no way back to an earlier state.
type State string

const (
	// StateUninitialized means no format parameters have been set yet.
	StateUninitialized State = "uninitialized"
	// StateInitialized means the stream format has been negotiated. The
	// target pixel format may still be changed in this state.
	StateInitialized State = "initialized"
	// StateContextCreated means the underlying decoder context has been
	// constructed. From here on the negotiated formats are frozen.
	StateContextCreated State = "context-created"
)

// Update updates current state, s, to next. If f fails to execute,
// s will stay unchanged. Otherwise, s will be updated to next.
func (s *State) Update(next State, f func() error) error {
	type checkFunc func() error
	m := map[State]checkFunc{
		StateInitialized:    s.toInitialized,
		StateContextCreated: s.toContextCreated,
	}

	check, ok := m[next]
	if !ok {
		return errors.Wrapf(ErrInvalidState, "%s is not a reachable state", next)
	}

	if err := check(); err != nil {
		return err
	}

	err := f()
	if err == nil {
		*s = next
	}
	return err
}

func (s *State) toInitialized() error {
	if *s != StateUninitialized {
		return errors.Wrapf(ErrInvalidState, "context is already %s", *s)
	}
	return nil
}

func (s *State) toContextCreated() error {
	if *s == StateUninitialized {
		return errors.Wrap(ErrInvalidState, "format parameters have not been set")
	}

	if *s == StateContextCreated {
		return errors.Wrap(ErrInvalidState, "context has already been created")
	}

	return nil
}
