package core

import "fmt"

// StateKind is the outcome of inspecting a resource. Exactly one holds.
type StateKind int

const (
	// StateMissing: the target does not exist.
	StateMissing StateKind = iota
	// StateCorrect: the target matches the desired state.
	StateCorrect
	// StateIncorrect: the target exists but has the wrong identity.
	StateIncorrect
	// StateInvalid: a precondition cannot be met, e.g. the source is not
	// checked out. Never fatal, never applied.
	StateInvalid
)

func (k StateKind) String() string {
	switch k {
	case StateMissing:
		return "missing"
	case StateCorrect:
		return "correct"
	case StateIncorrect:
		return "incorrect"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// State is the inspected state of a resource. Current is set for Incorrect,
// Reason for Invalid.
type State struct {
	Kind    StateKind
	Current string
	Reason  string
}

func Missing() State { return State{Kind: StateMissing} }
func Correct() State { return State{Kind: StateCorrect} }

func Incorrect(current string) State {
	return State{Kind: StateIncorrect, Current: current}
}

func Invalid(reason string) State {
	return State{Kind: StateInvalid, Reason: reason}
}

// NeedsApply is true for Missing and Incorrect.
func (s State) NeedsApply() bool {
	return s.Kind == StateMissing || s.Kind == StateIncorrect
}

func (s State) String() string {
	switch s.Kind {
	case StateIncorrect:
		return fmt.Sprintf("incorrect (current: %s)", s.Current)
	case StateInvalid:
		return fmt.Sprintf("invalid (%s)", s.Reason)
	default:
		return s.Kind.String()
	}
}
