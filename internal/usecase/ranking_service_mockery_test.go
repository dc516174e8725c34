package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/quilitane/cunilympiades/internal/domain/challenge"
	"github.com/quilitane/cunilympiades/internal/domain/game"
	"github.com/quilitane/cunilympiades/internal/domain/session"
	"github.com/quilitane/cunilympiades/internal/domain/team"
	gamemock "github.com/quilitane/cunilympiades/internal/mocks/domain/game"
	sessionmock "github.com/quilitane/cunilympiades/internal/mocks/domain/session"
	"github.com/quilitane/cunilympiades/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestRankingService_Leaderboard_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-123")
	store := gamemock.NewStore(t)
	sessions := sessionmock.NewRepository(t)

	service := NewRankingService(store, sessions, logging.NewNop())
	dataset := game.Dataset{
		Teams: []team.Team{
			{
				ID: "t-low", Name: "Low", Color: "#111111", Points: 5,
				Players: []team.Player{{ID: "p-1", FirstName: "Ada", PersonalPoints: 5}},
			},
			{
				ID: "t-high", Name: "High", Color: "#222222", Points: 30,
				CompletedChallenges: []string{"c-1"},
				Players:             []team.Player{{ID: "p-2", FirstName: "Bea", PersonalPoints: 10}},
			},
		},
		Challenges: []challenge.Challenge{
			{ID: "c-1", Name: "Climb", Type: challenge.TypeNormal, Points: 20, Winners: []string{"t-high"}},
		},
	}

	store.
		On("Snapshot", mock.MatchedBy(func(v context.Context) bool { return v != nil })).
		Return(dataset, nil).
		Once()
	sessions.
		On("Get", mock.MatchedBy(func(v context.Context) bool { return v != nil })).
		Return(session.State{}, nil).
		Once()

	got, err := service.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if got.Suspense {
		t.Fatalf("expected suspense off")
	}
	if len(got.Entries) != 2 {
		t.Fatalf("unexpected entry count: got=%d want=2", len(got.Entries))
	}
	if got.Entries[0].TeamID != "t-high" || got.Entries[0].Total != 30 {
		t.Fatalf("unexpected leader: %+v", got.Entries[0])
	}
}

func TestRankingService_Leaderboard_StoreErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := gamemock.NewStore(t)
	sessions := sessionmock.NewRepository(t)

	service := NewRankingService(store, sessions, logging.NewNop())
	storeErr := errors.New("store is down")

	store.
		On("Snapshot", mock.MatchedBy(func(v context.Context) bool { return v != nil })).
		Return(game.Dataset{}, storeErr).
		Once()

	_, err := service.Leaderboard(ctx)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestSessionService_CancelPause_PersistErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := gamemock.NewStore(t)
	sessions := sessionmock.NewRepository(t)

	service := NewSessionService(store, sessions, logging.NewNop())
	setErr := errors.New("session store rejected write")

	sessions.
		On("Get", mock.MatchedBy(func(v context.Context) bool { return v != nil })).
		Return(session.State{}, nil).
		Once()
	sessions.
		On("Set", mock.MatchedBy(func(v context.Context) bool { return v != nil }), mock.Anything).
		Return(setErr).
		Once()

	_, err := service.CancelPause(ctx)
	if !errors.Is(err, setErr) {
		t.Fatalf("expected set error, got %v", err)
	}
}
