package cancellable

import (
	"fmt"
	"sync/atomic"
)

// State is the driver's position in its lifecycle.
type State int32

const (
	// StatePending: NewHandle has not returned yet.
	StatePending State = iota
	// StateRunning: the loop is issuing Run calls.
	StateRunning
	// StateCancelled: the loop stopped cleanly. Terminal.
	StateCancelled
	// StateFailed: Run or the sink returned an error. Terminal.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Terminal reports whether no further Run calls can follow s.
func (s State) Terminal() bool {
	return s == StateCancelled || s == StateFailed
}

// CanTransition reports whether the driver may move from one state to
// another. Terminal states have no way out.
func CanTransition(from, to State) bool {
	switch from {
	case StatePending:
		return to == StateRunning
	case StateRunning:
		return to == StateRunning || to.Terminal()
	default:
		return false
	}
}

type stateMachine struct {
	v atomic.Int32
}

func (m *stateMachine) load() State {
	return State(m.v.Load())
}

// transition moves from -> to if the current state is from and the move
// is legal.
func (m *stateMachine) transition(from, to State) bool {
	if !CanTransition(from, to) {
		return false
	}
	return m.v.CompareAndSwap(int32(from), int32(to))
}
