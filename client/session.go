package client

import (
	"sync"
)

// Session holds the client's current identity. It is populated on
// successful login, cleared on logout, and read-only to everything
// else.
type Session struct {
	mu    sync.RWMutex
	token string
	user  User
}

// NewSession creates an empty, unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

func (s *Session) begin(token string, user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = User{}
}

// Token returns the current bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the authenticated user, zero when logged out.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Active reports whether the session holds a credential.
func (s *Session) Active() bool {
	return s.Token() != ""
}
