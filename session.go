package tutor

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a single conversation turn.
type ChatMessage struct {
	Role      string    `json:"role"` // "student" or "tutor"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session holds one student's conversation history.
type Session struct {
	ID        string        `json:"session_id"`
	CreatedAt time.Time     `json:"created_at"`
	Messages  []ChatMessage `json:"messages"`
}

// SessionStore is the persistence abstraction. maxTurns bounds history per
// session; AddMessage drops the oldest turns past the bound.
type SessionStore interface {
	Create() *Session
	Get(id string) (*Session, bool)
	Delete(id string) bool
	AddMessage(id string, msg ChatMessage) bool
	// ListRange returns sessions from offset with limit, newest first.
	ListRange(offset, limit int) []*Session
	// Clean keeps at most max sessions by recency.
	Clean(max int) error
}

// MemSessionStore keeps sessions in process memory. It is the default store
// and the one tests use.
type MemSessionStore struct {
	mu       sync.RWMutex
	maxTurns int
	sessions map[string]*Session
}

func NewMemSessionStore(maxTurns int) *MemSessionStore {
	if maxTurns <= 0 {
		maxTurns = 20
	}
	return &MemSessionStore{maxTurns: maxTurns, sessions: make(map[string]*Session)}
}

func (m *MemSessionStore) Create() *Session {
	s := &Session{ID: uuid.New().String(), CreatedAt: time.Now(), Messages: []ChatMessage{}}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *MemSessionStore) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	return s, ok
}

func (m *MemSessionStore) Delete(id string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	return ok
}

func (m *MemSessionStore) AddMessage(id string, msg ChatMessage) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	s.Messages = append(s.Messages, msg)
	if len(s.Messages) > m.maxTurns {
		s.Messages = s.Messages[len(s.Messages)-m.maxTurns:]
	}
	return true
}

func (m *MemSessionStore) ListRange(offset, limit int) []*Session {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return []*Session{}
	}
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []*Session{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func (m *MemSessionStore) Clean(max int) error {
	if max <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) <= max {
		return nil
	}
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	for _, s := range all[max:] {
		delete(m.sessions, s.ID)
	}
	return nil
}
