// Package session runs one charge point's OCPP lifecycle: a single
// goroutine per charge point, driven by a select loop over inbound
// frames, timers, and cancellation, mirroring the
// original_source/crates/cp/src/dynamic.rs tokio::select! loop this
// simulator was distilled from.
package session

import (
	"sync"
	"time"
)

// State is a transaction's position in its lifecycle, narrowed from the
// teacher's station.StateMachine (which tracks a full connected/faulted/
// available lattice) down to the four states a charge point session
// actually cycles through here.
type State string

const (
	StateIdle     State = "Idle"
	StateStarting State = "Starting"
	StateCharging State = "Charging"
	StateStopping State = "Stopping"
)

// Transition records one state change, for diagnostics and tests.
type Transition struct {
	From      State
	To        State
	Timestamp time.Time
	Reason    string
}

var validTransitions = map[State][]State{
	StateIdle:     {StateStarting},
	StateStarting: {StateCharging, StateIdle},
	StateCharging: {StateStopping},
	StateStopping: {StateIdle},
}

// StateMachine tracks a session's position in Idle → Starting → Charging
// → Stopping → Idle and rejects out-of-sequence transitions.
type StateMachine struct {
	mu      sync.RWMutex
	current State
	history []Transition
}

// NewStateMachine returns a StateMachine starting in StateIdle.
func NewStateMachine() *StateMachine {
	return &StateMachine{current: StateIdle}
}

// Current returns the current state.
func (sm *StateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

// CanTransition reports whether moving to `to` is valid from the current state.
func (sm *StateMachine) CanTransition(to State) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for _, allowed := range validTransitions[sm.current] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves the state machine to `to`, returning false without
// changing state if the transition is not in the allowed sequence.
func (sm *StateMachine) Transition(to State, reason string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	allowed := false
	for _, a := range validTransitions[sm.current] {
		if a == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}

	sm.history = append(sm.history, Transition{
		From: sm.current, To: to, Timestamp: time.Now(), Reason: reason,
	})
	sm.current = to
	return true
}

// History returns a copy of recorded transitions.
func (sm *StateMachine) History() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make([]Transition, len(sm.history))
	copy(out, sm.history)
	return out
}
