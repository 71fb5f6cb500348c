// Package session holds the client-side record of the authenticated user:
// bearer token, role, and identity. It is the only durable client state.
package session

import (
	"strings"
	"sync"
)

// User identifies the signed-in account as reported by the sign-in endpoint.
type User struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Name       string `json:"name,omitempty"`
}

// Session is the token/role/user triple created at sign-in.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	User  User   `json:"user"`
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Token) != ""
}

// Reader is the read-only view consumed by the API client and access gate.
type Reader interface {
	// Get returns the current session. The boolean is false when no session
	// is stored; Get never fails.
	Get() (Session, bool)
}

// Store is the full session lifecycle: sign-in writes, sign-out clears.
type Store interface {
	Reader
	Set(s Session) error
	Clear() error
}

// Memory is an in-process store for tests and embedding.
type Memory struct {
	mu      sync.RWMutex
	current Session
	present bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Get() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.present || !m.current.Authenticated() {
		return Session{}, false
	}
	return m.current, true
}

func (m *Memory) Set(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
	m.present = true
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{}
	m.present = false
	return nil
}
