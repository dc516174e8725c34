package app

import (
	"fmt"
	"net/http"

	"github.com/quilitane/cunilympiades/internal/config"
	"github.com/quilitane/cunilympiades/internal/domain/game"
	"github.com/quilitane/cunilympiades/internal/infrastructure/repository/memory"
	"github.com/quilitane/cunilympiades/internal/infrastructure/seed"
	"github.com/quilitane/cunilympiades/internal/infrastructure/snapshot"
	"github.com/quilitane/cunilympiades/internal/infrastructure/webhook"
	"github.com/quilitane/cunilympiades/internal/interfaces/httpapi"
	"github.com/quilitane/cunilympiades/internal/platform/logging"
	"github.com/quilitane/cunilympiades/internal/platform/resilience"
	"github.com/quilitane/cunilympiades/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	dataset, err := loadSeed(cfg)
	if err != nil {
		return nil, fmt.Errorf("load seed dataset: %w", err)
	}

	gameStore := memory.NewGameStore(dataset)
	sessionStore := memory.NewSessionStore()

	sinks, err := buildSinks(cfg, logger)
	if err != nil {
		return nil, err
	}

	scoringSvc, err := usecase.NewScoringService(
		gameStore,
		sessionStore,
		usecase.ScoringConfig{
			ResetClearsSession: cfg.ResetClearsSession,
			PersistWorkers:     cfg.PersistWorkers,
		},
		sinks,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("build scoring service: %w", err)
	}

	rankingSvc := usecase.NewRankingService(gameStore, sessionStore, logger)
	sessionSvc := usecase.NewSessionService(gameStore, sessionStore, logger)

	handler := httpapi.NewHandler(scoringSvc, rankingSvc, sessionSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.AdminToken, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func loadSeed(cfg config.Config) (game.Dataset, error) {
	if cfg.SeedTeamsPath != "" && cfg.SeedChallengesPath != "" {
		return seed.Load(cfg.SeedTeamsPath, cfg.SeedChallengesPath)
	}

	return memory.SeedDataset(), nil
}

func buildSinks(cfg config.Config, logger *logging.Logger) ([]usecase.SnapshotSink, error) {
	var sinks []usecase.SnapshotSink

	if cfg.SnapshotEnabled {
		fileStore, err := snapshot.NewFileStore(cfg.SnapshotDir)
		if err != nil {
			return nil, fmt.Errorf("build file snapshot store: %w", err)
		}
		sinks = append(sinks, fileStore)
	}

	if cfg.DBURL != "" {
		pgStore, err := snapshot.NewPostgresStore(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("build postgres snapshot store: %w", err)
		}
		sinks = append(sinks, pgStore)
	}

	if cfg.WebhookEnabled {
		broadcaster, err := webhook.NewBroadcaster(webhook.BroadcasterConfig{
			URL:     cfg.WebhookURL,
			Token:   cfg.WebhookToken,
			Timeout: cfg.WebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMax,
			},
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("build webhook broadcaster: %w", err)
		}
		sinks = append(sinks, broadcaster)
	}

	return sinks, nil
}
