package pipeline

import (
	"fmt"
	"sync"
)

// State tracks each stage of a single notes job.
type State string

const (
	StateIdle            State = "idle"
	StateTranscribing    State = "transcribing"
	StateGeneratingNotes State = "generating_notes"
	StateCompleted       State = "completed"
	StateFailed          State = "failed"
)

// machine enforces the allowed job state transitions.
type machine struct {
	mu    sync.RWMutex
	state State
}

func newMachine() *machine {
	return &machine{state: StateIdle}
}

func (m *machine) current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// tryStart moves the machine into transcribing if no job is active.
func (m *machine) tryStart() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateTranscribing, StateGeneratingNotes:
		return false
	default:
		m.state = StateTranscribing
		return true
	}
}

func (m *machine) transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !validTransition(m.state, to) {
		return fmt.Errorf("invalid transition: %s -> %s", m.state, to)
	}
	m.state = to
	return nil
}

func validTransition(from, to State) bool {
	switch from {
	case StateIdle:
		return to == StateTranscribing
	case StateTranscribing:
		return to == StateGeneratingNotes || to == StateFailed
	case StateGeneratingNotes:
		return to == StateCompleted || to == StateFailed
	case StateCompleted, StateFailed:
		return to == StateTranscribing || to == StateIdle
	default:
		return false
	}
}
