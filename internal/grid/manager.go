package grid

import (
	"sync"
	"time"
)

// Manager hands out one Accumulator per editing session. Two admins
// editing the same cell from different sessions is last-writer-wins at
// commit time; the store does not detect it.
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*Accumulator
	commit      CommitFunc
	idleTimeout time.Duration
}

func NewManager(commit CommitFunc, idleTimeout time.Duration) *Manager {
	return &Manager{
		sessions:    make(map[string]*Accumulator),
		commit:      commit,
		idleTimeout: idleTimeout,
	}
}

// Get returns the session's accumulator, creating it on first use.
func (m *Manager) Get(sessionID string) *Accumulator {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.sessions[sessionID]
	if !ok {
		acc = NewAccumulator(m.commit, m.idleTimeout)
		acc.onIdle = func() { m.evict(sessionID, acc) }
		m.sessions[sessionID] = acc
	}
	return acc
}

// evict retires a session once its idle auto-commit drained the buffer.
// A failed auto-commit keeps edits pending, so the session survives.
func (m *Manager) evict(sessionID string, acc *Accumulator) {
	m.mu.Lock()
	if m.sessions[sessionID] == acc && acc.PendingCount() == 0 {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()
}

// Len reports how many sessions currently hold a buffer.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Drop forgets a session, discarding whatever it still buffered.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	acc, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if ok {
		acc.Discard()
	}
}
