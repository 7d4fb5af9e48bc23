// Package state tracks what a user's next free-text message is expected to
// mean. It is a single per-user flag, held in memory only.
package state

import "sync"

// State identifies the pending conversation step for a user.
type State string

const (
	// Idle indicates there is no pending expectation for the user.
	Idle State = "idle"
	// AwaitingSearchTerm means the next message is a product search term.
	AwaitingSearchTerm State = "awaiting_search_term"
	// AwaitingPurchase means the next message is a purchase entry.
	AwaitingPurchase State = "awaiting_purchase"
	// AwaitingAIQuestion means the next message is a question for the assistant.
	AwaitingAIQuestion State = "awaiting_ai_question"
)

// Manager stores the pending state per user. Users without an entry are Idle.
type Manager struct {
	mu     sync.RWMutex
	states map[int64]State
}

// NewManager constructs an empty in-memory Manager.
func NewManager() *Manager {
	return &Manager{states: make(map[int64]State)}
}

// Get returns the current state of a user, or Idle if none is set.
func (m *Manager) Get(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.states[userID]; ok {
		return st
	}
	return Idle
}

// Set updates the pending state for a user.
func (m *Manager) Set(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st == Idle {
		delete(m.states, userID)
		return
	}
	m.states[userID] = st
}

// Consume returns the current state and resets it to Idle in one step.
// States are single-use: the first text message after a prompt consumes the
// expectation regardless of whether it is well-formed.
func (m *Manager) Consume(userID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[userID]
	if !ok {
		return Idle
	}
	delete(m.states, userID)
	return st
}

// InProgress reports whether the user has a pending state other than Idle.
func (m *Manager) InProgress(userID int64) bool {
	return m.Get(userID) != Idle
}
