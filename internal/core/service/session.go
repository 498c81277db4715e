package service

import "sync"

// Session holds the identity of the user currently operating a client.
// It is set on login or registration, cleared on logout and empty at start.
type Session struct {
	mu       sync.RWMutex
	username string
	token    string
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Start(username, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.token = token
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
	s.token = ""
}

// Username returns the current user and whether a session is active.
func (s *Session) Username() (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username, s.username != ""
}

func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
