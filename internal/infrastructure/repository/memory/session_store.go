package memory

import (
	"context"
	"sync"

	"github.com/quilitane/cunilympiades/internal/domain/session"
)

// SessionStore holds the single session state record, independent of the
// per-team data. Starts out inactive: no suspense, no pause.
type SessionStore struct {
	mu    sync.RWMutex
	state session.State
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Get(_ context.Context) (session.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone(), nil
}

func (s *SessionStore) Set(_ context.Context, state session.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state.Clone()

	return nil
}
