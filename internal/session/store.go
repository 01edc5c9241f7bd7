package session

import (
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/blog-cms-api/internal/models"
)

// Store is the process-wide registry of active sessions.
// Sessions have no expiry; they live until invalidated or the process exits.
type Store struct {
	mu       sync.RWMutex
	sessions map[models.SessionID]models.UserState
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[models.SessionID]models.UserState),
	}
}

// Create registers a new session for the given state and returns its id
func (s *Store) Create(state models.UserState) (models.SessionID, error) {
	var id models.SessionID
	if _, err := rand.Read(id[:]); err != nil {
		return id, fmt.Errorf("generate session id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = state
	return id, nil
}

// Invalidate removes a session. Unknown ids are ignored.
func (s *Store) Invalidate(id models.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Lookup returns the state bound to a session id
func (s *Store) Lookup(id models.SessionID) (models.UserState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[id]
	return state, ok
}

// Len returns the number of active sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
