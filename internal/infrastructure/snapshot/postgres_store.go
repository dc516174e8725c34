package snapshot

import (
	"context"
	"encoding/json"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/quilitane/cunilympiades/internal/domain/game"
	"github.com/quilitane/cunilympiades/internal/infrastructure/seed"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// PostgresStore archives one row per applied mutation into the
// game_snapshots table (see db/migrations). It is an append-only mirror for
// after-the-fact inspection; the in-memory store stays the source of truth.
type PostgresStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	db, err := otelsqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, crerr.Wrap(err, "connect snapshot database")
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)
	otelsql.ReportDBStatsMetrics(db.DB)

	return &PostgresStore{db: db, now: time.Now}, nil
}

func (s *PostgresStore) Name() string {
	return "postgres"
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Persist(ctx context.Context, dataset game.Dataset) error {
	teamsRaw, err := seed.EncodeTeams(dataset.Teams)
	if err != nil {
		return err
	}
	challengesRaw, err := seed.EncodeChallenges(dataset.Challenges)
	if err != nil {
		return err
	}
	payload, err := sonic.Marshal(map[string]json.RawMessage{
		"teams":      teamsRaw,
		"challenges": challengesRaw,
	})
	if err != nil {
		return crerr.Wrap(err, "encode snapshot payload")
	}

	const query = `INSERT INTO game_snapshots (payload, created_at) VALUES ($1, $2)`
	if _, err := s.db.ExecContext(ctx, query, payload, s.now().UTC()); err != nil {
		return crerr.Wrap(err, "insert snapshot row")
	}

	return nil
}
