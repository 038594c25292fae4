package session

import (
	"sync"

	"github.com/google/uuid"
)

// Manager tracks live sessions for the HTTP layer, keyed by UUID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create starts a new session and returns its id.
func (m *Manager) Create() (string, *Session) {
	id := uuid.New().String()
	s := New()

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return id, s
}

// Get looks up a session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes a session. Removing an unknown id is a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
