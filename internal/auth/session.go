// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package auth implements the optional GitHub OAuth login flow and the
// in-memory cookie sessions behind /api/me.
package auth

import (
	"sync"

	"github.com/google/uuid"
)

// SessionCookieName is the session cookie set after a completed login.
const SessionCookieName = "qfc_session"

// User is the identity stored in a session, as reported by the OAuth
// provider.
type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// SessionStore holds active sessions in memory. Sessions do not survive
// a restart; there is no persisted state in this system.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*User
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*User)}
}

// Create stores the user under a fresh session id and returns the id.
func (s *SessionStore) Create(u *User) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = u
	s.mu.Unlock()
	return id
}

// Get returns the user for a session id.
func (s *SessionStore) Get(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.sessions[id]
	return u, ok
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
