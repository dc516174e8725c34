package usecase

import (
	"context"
	"fmt"

	"github.com/panjf2000/ants/v2"
	"github.com/quilitane/cunilympiades/internal/domain/game"
	"github.com/quilitane/cunilympiades/internal/domain/session"
	"github.com/quilitane/cunilympiades/internal/platform/logging"
)

// SnapshotSink receives the full dataset after every applied mutation.
// Delivery is fire-and-forget: the in-memory transition is complete before
// any sink runs, and a failing sink never rolls it back.
type SnapshotSink interface {
	Name() string
	Persist(ctx context.Context, dataset game.Dataset) error
}

type ScoringConfig struct {
	// ResetClearsSession controls whether Reset also drops suspense mode and
	// any active pause. The original backend kept session flags across reset,
	// so the default is false.
	ResetClearsSession bool
	PersistWorkers     int
}

const defaultPersistWorkers = 2

// ScoringService owns every mutation of team and challenge state. All
// operations are total: preconditions that fail reject with a reason and
// leave state untouched.
type ScoringService struct {
	store    game.Store
	sessions session.Repository
	sinks    []SnapshotSink
	pool     *ants.Pool
	logger   *logging.Logger

	resetClearsSession bool
}

func NewScoringService(
	store game.Store,
	sessions session.Repository,
	cfg ScoringConfig,
	sinks []SnapshotSink,
	logger *logging.Logger,
) (*ScoringService, error) {
	if store == nil {
		return nil, fmt.Errorf("game store is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session repository is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	var pool *ants.Pool
	if len(sinks) > 0 {
		workers := cfg.PersistWorkers
		if workers <= 0 {
			workers = defaultPersistWorkers
		}
		var err error
		pool, err = ants.NewPool(workers)
		if err != nil {
			return nil, fmt.Errorf("create persistence worker pool: %w", err)
		}
	}

	return &ScoringService{
		store:              store,
		sessions:           sessions,
		sinks:              sinks,
		pool:               pool,
		logger:             logger,
		resetClearsSession: cfg.ResetClearsSession,
	}, nil
}

// Close releases the persistence worker pool.
func (s *ScoringService) Close() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// ToggleCompletion flips whether a team has completed a challenge. Calling
// twice in a row restores the prior state exactly. Disabled challenges and
// exclusivity conflicts reject; removal clamps the team total at zero.
func (s *ScoringService) ToggleCompletion(ctx context.Context, teamID, challengeID string) (game.Dataset, Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ToggleCompletion")
	defer span.End()

	var out Outcome
	dataset, err := s.store.Update(ctx, func(d *game.Dataset) error {
		t := d.Team(teamID)
		if t == nil {
			out = rejected(ReasonTeamNotFound)
			return nil
		}
		c := d.Challenge(challengeID)
		if c == nil {
			out = rejected(ReasonChallengeNotFound)
			return nil
		}
		if c.Disabled {
			out = rejected(ReasonChallengeDisabled)
			return nil
		}

		if c.HasWinner(t.ID) {
			c.Winners = removeID(c.Winners, t.ID)
			t.CompletedChallenges = removeID(t.CompletedChallenges, c.ID)
			t.Points = clampZero(t.Points - c.Points)
			out = applied()
			return nil
		}

		// Exclusivity is first-come: a rare or secret challenge already won
		// by someone else cannot be taken over.
		if c.Exclusive() && len(c.Winners) > 0 {
			out = rejected(ReasonExclusiveConflict)
			return nil
		}

		c.Winners = append(c.Winners, t.ID)
		t.CompletedChallenges = append(t.CompletedChallenges, c.ID)
		t.Points += c.Points
		out = applied()
		return nil
	})
	if err != nil {
		return game.Dataset{}, Outcome{}, fmt.Errorf("toggle completion team=%s challenge=%s: %w", teamID, challengeID, err)
	}

	s.afterMutation(ctx, "toggle_completion", out, dataset,
		"team_id", teamID, "challenge_id", challengeID)
	return dataset, out, nil
}

// ToggleDisabled flips a challenge's disabled flag and re-applies or retracts
// its scoring effect for every winning team. The winners list itself is never
// touched, so disable then enable is lossless.
func (s *ScoringService) ToggleDisabled(ctx context.Context, challengeID string) (game.Dataset, Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ToggleDisabled")
	defer span.End()

	var out Outcome
	dataset, err := s.store.Update(ctx, func(d *game.Dataset) error {
		c := d.Challenge(challengeID)
		if c == nil {
			out = rejected(ReasonChallengeNotFound)
			return nil
		}

		wasDisabled := c.Disabled
		c.Disabled = !wasDisabled

		for _, winnerID := range c.Winners {
			t := d.Team(winnerID)
			if t == nil {
				continue
			}
			completed := t.HasCompleted(c.ID)
			if wasDisabled {
				// Re-enabling: restore the completed entry and the points.
				if !completed {
					t.CompletedChallenges = append(t.CompletedChallenges, c.ID)
					t.Points += c.Points
				}
			} else {
				// Disabling: retract points but keep the winner record.
				if completed {
					t.CompletedChallenges = removeID(t.CompletedChallenges, c.ID)
					t.Points = clampZero(t.Points - c.Points)
				}
			}
		}

		out = applied()
		return nil
	})
	if err != nil {
		return game.Dataset{}, Outcome{}, fmt.Errorf("toggle disabled challenge=%s: %w", challengeID, err)
	}

	s.afterMutation(ctx, "toggle_disabled", out, dataset, "challenge_id", challengeID)
	return dataset, out, nil
}

// AddPersonalPoints grants an admin bonus to one player. The amount must be
// strictly positive; the player must belong to the given team.
func (s *ScoringService) AddPersonalPoints(ctx context.Context, teamID, playerID string, amount int) (game.Dataset, Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.AddPersonalPoints")
	defer span.End()

	var out Outcome
	dataset, err := s.store.Update(ctx, func(d *game.Dataset) error {
		if amount <= 0 {
			out = rejected(ReasonNonPositiveAmount)
			return nil
		}
		t := d.Team(teamID)
		if t == nil {
			out = rejected(ReasonTeamNotFound)
			return nil
		}
		for i := range t.Players {
			if t.Players[i].ID == playerID {
				t.Players[i].PersonalPoints += amount
				t.Points += amount
				out = applied()
				return nil
			}
		}
		out = rejected(ReasonPlayerNotFound)
		return nil
	})
	if err != nil {
		return game.Dataset{}, Outcome{}, fmt.Errorf("add personal points team=%s player=%s: %w", teamID, playerID, err)
	}

	s.afterMutation(ctx, "add_personal_points", out, dataset,
		"team_id", teamID, "player_id", playerID, "amount", amount)
	return dataset, out, nil
}

// SwapPlayers exchanges two players between their teams in one atomic step.
// Personal points travel with the player; challenge credit stays with the
// team. Total points across the two teams are conserved.
func (s *ScoringService) SwapPlayers(ctx context.Context, playerID, targetTeamID, targetPlayerID string) (game.Dataset, Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SwapPlayers")
	defer span.End()

	var out Outcome
	dataset, err := s.store.Update(ctx, func(d *game.Dataset) error {
		if playerID == targetPlayerID {
			out = rejected(ReasonSelfSwap)
			return nil
		}
		source, sourceIdx := d.FindPlayer(playerID)
		if source == nil {
			out = rejected(ReasonPlayerNotFound)
			return nil
		}
		target := d.Team(targetTeamID)
		if target == nil {
			out = rejected(ReasonTeamNotFound)
			return nil
		}
		targetIdx := -1
		for i := range target.Players {
			if target.Players[i].ID == targetPlayerID {
				targetIdx = i
				break
			}
		}
		if targetIdx < 0 {
			out = rejected(ReasonPlayerNotFound)
			return nil
		}

		moving := source.Players[sourceIdx]
		arriving := target.Players[targetIdx]
		source.Players[sourceIdx] = arriving
		target.Players[targetIdx] = moving
		// Net zero when both players share a team.
		source.Points = source.Points - moving.PersonalPoints + arriving.PersonalPoints
		target.Points = target.Points - arriving.PersonalPoints + moving.PersonalPoints

		out = applied()
		return nil
	})
	if err != nil {
		return game.Dataset{}, Outcome{}, fmt.Errorf("swap players %s<->%s: %w", playerID, targetPlayerID, err)
	}

	s.afterMutation(ctx, "swap_players", out, dataset,
		"player_id", playerID, "target_team_id", targetTeamID, "target_player_id", targetPlayerID)
	return dataset, out, nil
}

// Reset reloads the original seed, discarding every accumulated mutation.
// Session state survives unless ResetClearsSession is configured.
func (s *ScoringService) Reset(ctx context.Context) (game.Dataset, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Reset")
	defer span.End()

	dataset, err := s.store.Reset(ctx)
	if err != nil {
		return game.Dataset{}, fmt.Errorf("reset game store: %w", err)
	}

	if s.resetClearsSession {
		if err := s.sessions.Set(ctx, session.State{}); err != nil {
			return game.Dataset{}, fmt.Errorf("clear session state on reset: %w", err)
		}
	}

	s.afterMutation(ctx, "reset", applied(), dataset)
	return dataset, nil
}

// Dataset returns a consistent snapshot of the whole competition state.
func (s *ScoringService) Dataset(ctx context.Context) (game.Dataset, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Dataset")
	defer span.End()

	dataset, err := s.store.Snapshot(ctx)
	if err != nil {
		return game.Dataset{}, fmt.Errorf("snapshot game store: %w", err)
	}
	return dataset, nil
}

func (s *ScoringService) afterMutation(ctx context.Context, operation string, out Outcome, dataset game.Dataset, args ...any) {
	logArgs := append([]any{"operation", operation, "applied", out.Applied}, args...)
	if !out.Applied {
		logArgs = append(logArgs, "reason", string(out.Reason))
		s.logger.DebugContext(ctx, "mutation rejected", logArgs...)
		return
	}
	s.logger.InfoContext(ctx, "mutation applied", logArgs...)

	if s.pool == nil {
		return
	}

	// Sinks observe the state after the transition; the transition itself
	// never waits for them.
	persistCtx := context.WithoutCancel(ctx)
	for _, sink := range s.sinks {
		sink := sink
		if err := s.pool.Submit(func() {
			if err := sink.Persist(persistCtx, dataset); err != nil {
				s.logger.WarnContext(persistCtx, "snapshot sink failed",
					"sink", sink.Name(), "operation", operation, "error", err)
			}
		}); err != nil {
			s.logger.WarnContext(ctx, "submit snapshot persist task",
				"sink", sink.Name(), "operation", operation, "error", err)
		}
	}
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

func clampZero(points int) int {
	if points < 0 {
		return 0
	}
	return points
}
