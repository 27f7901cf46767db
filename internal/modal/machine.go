package modal

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/matheus3301/notilog/internal/bus"
)

// State is the lifecycle state of a modal dialog.
type State string

const (
	Closed   State = "CLOSED"
	Open     State = "OPEN"
	InFlight State = "IN_FLIGHT"
)

// ErrInFlight is returned by Begin while the modal's request is still running.
var ErrInFlight = errors.New("request already in flight")

// ErrNotOpen is returned by Begin when the modal is closed.
var ErrNotOpen = errors.New("modal is not open")

// validTransitions defines allowed state transitions. A failed request
// returns the modal to Open so the user can retry.
var validTransitions = map[State][]State{
	Closed:   {Open},
	Open:     {Closed, InFlight},
	InFlight: {Closed, Open},
}

// Machine tracks one modal dialog (a creation form or the delete confirm).
type Machine struct {
	mu      sync.RWMutex
	name    string
	current State
	bus     *bus.Bus
}

// NewMachine creates a closed modal. The bus may be nil.
func NewMachine(name string, b *bus.Bus) *Machine {
	return &Machine{
		name:    name,
		current: Closed,
		bus:     b,
	}
}

// Name returns the modal identifier.
func (m *Machine) Name() string { return m.name }

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsOpen reports whether the modal is visible (open or waiting on a request).
func (m *Machine) IsOpen() bool {
	return m.Current() != Closed
}

// Transition attempts to move to a new state. Returns error if transition is invalid.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitionLocked(to)
}

func (m *Machine) transitionLocked(to State) error {
	allowed := validTransitions[m.current]
	if !slices.Contains(allowed, to) {
		return fmt.Errorf("%s: invalid transition from %s to %s", m.name, m.current, to)
	}
	from := m.current
	m.current = to
	m.bus.Emit(bus.KindModalStateChanged, StateChange{
		Modal: m.name,
		From:  from,
		To:    to,
	})
	return nil
}

// Show opens the modal. Showing an already visible modal is a no-op.
func (m *Machine) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == Closed {
		_ = m.transitionLocked(Open)
	}
}

// Hide closes an open modal. A modal with a request in flight stays visible.
func (m *Machine) Hide() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != Open {
		return m.current == Closed
	}
	_ = m.transitionLocked(Closed)
	return true
}

// Begin marks the modal's request as in flight. It fails with ErrInFlight
// when a request is already running, which rejects duplicate submits.
func (m *Machine) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.current {
	case InFlight:
		return ErrInFlight
	case Closed:
		return ErrNotOpen
	}
	return m.transitionLocked(InFlight)
}

// Finish ends an in-flight request: success closes the modal, failure
// leaves it open for a retry.
func (m *Machine) Finish(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != InFlight {
		return
	}
	if success {
		_ = m.transitionLocked(Closed)
		return
	}
	_ = m.transitionLocked(Open)
}

// StateChange is the payload for modal state change events.
type StateChange struct {
	Modal string
	From  State
	To    State
}
