// Package auth is the admin session collaborator: a credential check
// against configured admin credentials and a token store for issued
// sessions. Tokens travel as Authorization bearer headers.
package auth

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/radio-cms-api/internal/config"
)

// Manager issues and validates admin session tokens
type Manager struct {
	username string
	password string
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]time.Time // token -> expiry

	// now is swappable for tests
	now func() time.Time
}

// NewManager creates a session manager for the configured admin account
func NewManager(cfg *config.AdminConfig) *Manager {
	return &Manager{
		username: cfg.Username,
		password: cfg.Password,
		ttl:      cfg.SessionTTL,
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Login checks the credentials and, on success, issues a session token.
// Comparison is constant-time so response timing leaks nothing about
// how much of a guess matched.
func (m *Manager) Login(username, password string) (string, bool) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) == 1
	if !userOK || !passOK {
		return "", false
	}

	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = m.now().Add(m.ttl)
	m.mu.Unlock()
	return token, true
}

// Logout invalidates a token. Unknown tokens are a no-op.
func (m *Manager) Logout(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Valid reports whether the token belongs to a live session. Expired
// sessions are pruned on sight.
func (m *Manager) Valid(token string) bool {
	if token == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.sessions[token]
	if !ok {
		return false
	}
	if m.now().After(expiry) {
		delete(m.sessions, token)
		return false
	}
	return true
}
