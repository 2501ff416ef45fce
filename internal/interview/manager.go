package interview

import (
	"sync"
)

// Manager holds the active session per user. Sessions are keyed by user id so
// no cross-user mutation can occur. The lock guards the map itself; each
// session carries its own mutex for the operations on it.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Session returns the user's active session or nil.
func (m *Manager) Session(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

// Set replaces the user's session. The previous session is discarded entirely;
// its rounds survive only in the persisted store.
func (m *Manager) Set(userID int64, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
}

// Drop removes the user's session, e.g. on logout.
func (m *Manager) Drop(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
