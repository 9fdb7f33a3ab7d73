package session

import (
	"sync"
	"time"
)

// Session is an in-progress training being assembled interactively.
// Pending holds entered lines not yet confirmed; Committed holds the
// confirmed ones. Sessions are volatile: a restart drops them.
type Session struct {
	UserID    int64
	StartedAt time.Time
	Committed []string
	Pending   []string
}

// Len is the total number of buffered entries, confirmed or not.
func (s *Session) Len() int {
	return len(s.Committed) + len(s.Pending)
}

// Entries returns committed entries followed by pending ones, as a copy.
func (s *Session) Entries() []string {
	out := make([]string, 0, s.Len())
	out = append(out, s.Committed...)
	out = append(out, s.Pending...)
	return out
}

// Store maps a user to their active session. A user has at most one
// session at a time. Implementations must be safe for concurrent use.
type Store interface {
	Get(userID int64) (*Session, bool)
	Put(s *Session)
	Remove(userID int64)
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

func (m *MemoryStore) Get(userID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

func (m *MemoryStore) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.UserID] = s
}

func (m *MemoryStore) Remove(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
