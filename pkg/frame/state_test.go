package frame

import (
	"testing"

	"github.com/pkg/errors"
)

var noop = func() error { return nil }

func TestStateForward(t *testing.T) {
	s := StateUninitialized
	if err := s.Update(StateInitialized, noop); err != nil {
		t.Fatal(err)
	}
	if s != StateInitialized {
		t.Fatalf("expected %s, got %s", StateInitialized, s)
	}

	if err := s.Update(StateContextCreated, noop); err != nil {
		t.Fatal(err)
	}
	if s != StateContextCreated {
		t.Fatalf("expected %s, got %s", StateContextCreated, s)
	}
}

func TestStateNoRegression(t *testing.T) {
	s := StateContextCreated
	err := s.Update(StateInitialized, noop)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if s != StateContextCreated {
		t.Fatalf("expected %s, got %s", StateContextCreated, s)
	}
}

func TestStateNoSkip(t *testing.T) {
	s := StateUninitialized
	err := s.Update(StateContextCreated, noop)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if s != StateUninitialized {
		t.Fatalf("expected %s, got %s", StateUninitialized, s)
	}
}

func TestStateDoubleContextCreate(t *testing.T) {
	s := StateInitialized
	if err := s.Update(StateContextCreated, noop); err != nil {
		t.Fatal(err)
	}
	err := s.Update(StateContextCreated, noop)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestStateStaysOnFailure(t *testing.T) {
	s := StateInitialized
	fail := errors.New("context creation failed")
	err := s.Update(StateContextCreated, func() error { return fail })
	if !errors.Is(err, fail) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
	if s != StateInitialized {
		t.Fatalf("expected %s, got %s", StateInitialized, s)
	}
}
