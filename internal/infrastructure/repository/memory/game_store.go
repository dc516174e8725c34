package memory

import (
	"context"
	"sync"

	"github.com/quilitane/cunilympiades/internal/domain/game"
)

// GameStore keeps the live competition state plus a pristine copy of the
// seed for reset. One RWMutex guards teams and challenges together: a
// compound mutation (team and challenge updated in the same operation) is
// installed in a single critical section, and every read returns a deep copy
// taken under the read lock, so callers never see a half-applied change.
type GameStore struct {
	mu   sync.RWMutex
	live game.Dataset
	seed game.Dataset
}

func NewGameStore(seed game.Dataset) *GameStore {
	return &GameStore{
		live: seed.Clone(),
		seed: seed.Clone(),
	}
}

func (s *GameStore) Snapshot(_ context.Context) (game.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.live.Clone(), nil
}

// Update runs fn against a private copy of the current state and installs
// the copy only when fn returns nil. The returned dataset is another copy,
// detached from the store.
func (s *GameStore) Update(_ context.Context, fn func(*game.Dataset) error) (game.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.live.Clone()
	if err := fn(&next); err != nil {
		return game.Dataset{}, err
	}
	s.live = next

	return next.Clone(), nil
}

// Reset discards every accumulated mutation and reloads the original seed.
func (s *GameStore) Reset(_ context.Context) (game.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.live = s.seed.Clone()

	return s.live.Clone(), nil
}
