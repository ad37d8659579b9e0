// Package memory implements an in-process session store with the same
// contract as the Redis store. It backs the degraded/demo mode (Redis
// disabled) and the tests. Sessions do not survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/campus-hub/student-records/internal/domain/session"
	"github.com/campus-hub/student-records/internal/domain/shared"
)

type entry struct {
	sess      session.Session // stored by value so callers can't mutate behind the lock
	expiresAt time.Time
}

// SessionStore implements session.Store on a mutex-guarded map.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewSessionStore creates an empty store with the standard session TTL.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[string]entry),
		ttl:     session.TTL,
		now:     time.Now,
	}
}

// Get returns the session and refreshes its sliding TTL.
func (s *SessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || s.now().After(e.expiresAt) {
		delete(s.entries, id)
		return nil, shared.ErrSessionNotFound
	}

	e.expiresAt = s.now().Add(s.ttl)
	s.entries[id] = e

	sess := e.sess
	return &sess, nil
}

// Save persists the session under its current id with the full TTL.
func (s *SessionStore) Save(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sess.ID] = entry{sess: *sess, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Delete removes the session. Unknown ids are not an error.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Sweep drops expired entries. The demo server calls this periodically;
// correctness does not depend on it because Get checks expiry itself.
func (s *SessionStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// Len returns the number of live entries (including not-yet-swept expired
// ones). Used by tests and the health endpoint in demo mode.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
