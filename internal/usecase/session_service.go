package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/quilitane/cunilympiades/internal/domain/game"
	"github.com/quilitane/cunilympiades/internal/domain/session"
	"github.com/quilitane/cunilympiades/internal/platform/logging"
)

// SessionStatus is the session state with the paused predicate already
// evaluated against "now".
type SessionStatus struct {
	State  session.State
	Paused bool
}

// SessionService owns the suspense and pause toggles.
type SessionService struct {
	store    game.Store
	sessions session.Repository
	logger   *logging.Logger
	now      func() time.Time
	shuffle  func(n int, swap func(i, j int))
}

func NewSessionService(store game.Store, sessions session.Repository, logger *logging.Logger) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionService{
		store:    store,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		shuffle:  rand.Shuffle,
	}
}

// Status returns the current session state. Paused is always derived fresh;
// it is never stored.
func (s *SessionService) Status(ctx context.Context) (SessionStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Status")
	defer span.End()

	state, err := s.sessions.Get(ctx)
	if err != nil {
		return SessionStatus{}, fmt.Errorf("get session state: %w", err)
	}
	return SessionStatus{State: state, Paused: state.Paused(s.now().UTC())}, nil
}

// SetSuspense turns suspense mode on or off. Activation rolls a fresh
// uniform permutation of the current team ids and keeps it fixed until
// deactivation, so the hidden leaderboard order does not shift between
// reads. Any active pause is left alone.
func (s *SessionService) SetSuspense(ctx context.Context, active bool) (session.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.SetSuspense")
	defer span.End()

	state, err := s.sessions.Get(ctx)
	if err != nil {
		return session.State{}, fmt.Errorf("get session state: %w", err)
	}

	if !active {
		state.SuspenseMode = false
		state.SuspenseOrder = nil
		if err := s.sessions.Set(ctx, state); err != nil {
			return session.State{}, fmt.Errorf("set session state: %w", err)
		}
		s.logger.InfoContext(ctx, "suspense mode deactivated")
		return state, nil
	}

	dataset, err := s.store.Snapshot(ctx)
	if err != nil {
		return session.State{}, fmt.Errorf("snapshot game store: %w", err)
	}
	order := make([]string, 0, len(dataset.Teams))
	for _, t := range dataset.Teams {
		order = append(order, t.ID)
	}
	s.shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	state.SuspenseMode = true
	state.SuspenseOrder = order
	if err := s.sessions.Set(ctx, state); err != nil {
		return session.State{}, fmt.Errorf("set session state: %w", err)
	}

	s.logger.InfoContext(ctx, "suspense mode activated", "teams", len(order))
	return state, nil
}

// StartPause suspends player-facing gameplay until resumeAt. A timestamp in
// the past is accepted and simply evaluates as "not paused".
func (s *SessionService) StartPause(ctx context.Context, resumeAt time.Time) (session.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.StartPause")
	defer span.End()

	state, err := s.sessions.Get(ctx)
	if err != nil {
		return session.State{}, fmt.Errorf("get session state: %w", err)
	}

	at := resumeAt.UTC()
	state.PauseUntil = &at
	if err := s.sessions.Set(ctx, state); err != nil {
		return session.State{}, fmt.Errorf("set session state: %w", err)
	}

	s.logger.InfoContext(ctx, "pause started", "resume_at", at)
	return state, nil
}

// CancelPause clears any pause, past or future.
func (s *SessionService) CancelPause(ctx context.Context) (session.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.CancelPause")
	defer span.End()

	state, err := s.sessions.Get(ctx)
	if err != nil {
		return session.State{}, fmt.Errorf("get session state: %w", err)
	}

	state.PauseUntil = nil
	if err := s.sessions.Set(ctx, state); err != nil {
		return session.State{}, fmt.Errorf("set session state: %w", err)
	}

	s.logger.InfoContext(ctx, "pause cancelled")
	return state, nil
}
