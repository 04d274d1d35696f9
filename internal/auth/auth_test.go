package auth

import (
	"testing"
	"time"

	"github.com/radio-cms-api/internal/config"
)

func testManager() *Manager {
	return NewManager(&config.AdminConfig{
		Username:   "admin",
		Password:   "correct-horse",
		SessionTTL: time.Hour,
	})
}

func TestLogin(t *testing.T) {
	m := testManager()

	token, ok := m.Login("admin", "correct-horse")
	if !ok || token == "" {
		t.Fatalf("Valid login rejected: ok=%v token=%q", ok, token)
	}
	if !m.Valid(token) {
		t.Error("Freshly issued token invalid")
	}

	if _, ok := m.Login("admin", "wrong"); ok {
		t.Error("Wrong password accepted")
	}
	if _, ok := m.Login("root", "correct-horse"); ok {
		t.Error("Wrong username accepted")
	}
}

func TestLogout(t *testing.T) {
	m := testManager()
	token, _ := m.Login("admin", "correct-horse")

	m.Logout(token)
	if m.Valid(token) {
		t.Error("Token valid after logout")
	}

	// Unknown token logout is a no-op.
	m.Logout("never-issued")
}

func TestValid_UnknownAndEmpty(t *testing.T) {
	m := testManager()

	if m.Valid("") {
		t.Error("Empty token accepted")
	}
	if m.Valid("made-up") {
		t.Error("Unknown token accepted")
	}
}

func TestValid_Expiry(t *testing.T) {
	m := testManager()
	token, _ := m.Login("admin", "correct-horse")

	// Jump past the TTL.
	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if m.Valid(token) {
		t.Error("Expired token accepted")
	}
	// Expired sessions are pruned, not just rejected.
	m.mu.Lock()
	_, stillThere := m.sessions[token]
	m.mu.Unlock()
	if stillThere {
		t.Error("Expired session not pruned")
	}
}
