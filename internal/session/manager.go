// Package session holds the in-memory registry of logged-in sellers. One
// session per seller; reopening replaces the previous one.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	ClientIP  string    `json:"client_ip"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Manager struct {
	sessions map[string]*Session // keyed by user id
	ttl      time.Duration
	mu       sync.Mutex
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Open creates (or replaces) the session for a seller.
func (m *Manager) Open(userID, name, clientIP string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	session := &Session{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Name:      name,
		ClientIP:  clientIP,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	m.sessions[userID] = session
	return session
}

// Get returns the live session for a user id, dropping it when expired.
func (m *Manager) Get(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[userID]
	if !ok {
		return nil
	}
	if time.Now().After(session.ExpiresAt) {
		delete(m.sessions, userID)
		return nil
	}
	return session
}

// Close drops the session for a user id.
func (m *Manager) Close(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[userID]; !ok {
		return false
	}
	delete(m.sessions, userID)
	return true
}

// Active lists live sessions, sweeping expired ones as a side effect.
func (m *Manager) Active() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	out := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, id)
			continue
		}
		out = append(out, s)
	}
	return out
}
