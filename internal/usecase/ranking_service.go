package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/quilitane/cunilympiades/internal/domain/game"
	"github.com/quilitane/cunilympiades/internal/domain/session"
	"github.com/quilitane/cunilympiades/internal/platform/logging"
)

// Standing is one leaderboard row. Total is recomputed from scratch, never
// read from the cached team total; a mismatch between the two means a
// mutation broke the accounting invariant and is logged.
type Standing struct {
	TeamID string
	Name   string
	Color  string
	Total  int
}

// Leaderboard is the ordered projection of the current state. When Suspense
// is true the order comes from the fixed session permutation, not from
// points, and presentation layers are expected to mask the totals.
type Leaderboard struct {
	Entries  []Standing
	Suspense bool
}

// RankingService derives leaderboards without mutating anything.
type RankingService struct {
	store    game.Store
	sessions session.Repository
	logger   *logging.Logger
}

func NewRankingService(store game.Store, sessions session.Repository, logger *logging.Logger) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RankingService{
		store:    store,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *RankingService) Leaderboard(ctx context.Context) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Leaderboard")
	defer span.End()

	dataset, err := s.store.Snapshot(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("snapshot game store: %w", err)
	}
	state, err := s.sessions.Get(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("get session state: %w", err)
	}

	entries := make([]Standing, 0, len(dataset.Teams))
	byID := make(map[string]Standing, len(dataset.Teams))
	teamIDs := make([]string, 0, len(dataset.Teams))
	for _, t := range dataset.Teams {
		total := t.PersonalTotal()
		for _, challengeID := range t.CompletedChallenges {
			if c := dataset.Challenge(challengeID); c != nil && !c.Disabled {
				total += c.Points
			}
		}
		if total != t.Points {
			s.logger.WarnContext(ctx, "cached team total diverged from recomputed total",
				"team_id", t.ID, "cached", t.Points, "recomputed", total)
		}

		entry := Standing{TeamID: t.ID, Name: t.Name, Color: t.Color, Total: total}
		entries = append(entries, entry)
		byID[t.ID] = entry
		teamIDs = append(teamIDs, t.ID)
	}

	if state.SuspenseMode && state.ValidOrderFor(teamIDs) {
		ordered := make([]Standing, 0, len(entries))
		for _, id := range state.SuspenseOrder {
			ordered = append(ordered, byID[id])
		}
		return Leaderboard{Entries: ordered, Suspense: true}, nil
	}

	// Ties keep the stable seed order of the input.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})

	return Leaderboard{Entries: entries, Suspense: state.SuspenseMode}, nil
}
