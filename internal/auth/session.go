package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Session represents a logged-in identity. Created on successful login,
// cleared on logout or expiry.
type Session struct {
	Token     string
	Identity  Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionManager tracks active sessions in memory. The verifier itself stays
// stateless; session lifecycle belongs to the presentation layer.
type SessionManager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
}

// NewSessionManager creates a session manager with the given session lifetime
func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session for a verified identity
func (m *SessionManager) Create(identity Identity) (*Session, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		Token:     hex.EncodeToString(buf),
		Identity:  identity,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[session.Token] = session
	m.mu.Unlock()

	return session, nil
}

// Get returns the session for a token, or nil if unknown or expired
func (m *SessionManager) Get(token string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return nil
	}
	if time.Now().After(session.ExpiresAt) {
		delete(m.sessions, token)
		return nil
	}
	return session
}

// Delete removes a session, ending it
func (m *SessionManager) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Sweep removes all expired sessions and returns how many were removed
func (m *SessionManager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}
