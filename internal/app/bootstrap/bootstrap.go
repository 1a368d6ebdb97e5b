package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	claimservice "claimdesk/contexts/creator-earnings/claim-service"
	"claimdesk/contexts/creator-earnings/claim-service/adapters/noop"
	claimpostgres "claimdesk/contexts/creator-earnings/claim-service/adapters/postgres"
	"claimdesk/contexts/creator-earnings/claim-service/application/workers"
	postservice "claimdesk/contexts/creator-earnings/post-service"
	postpostgres "claimdesk/contexts/creator-earnings/post-service/adapters/postgres"
	rateservice "claimdesk/contexts/creator-earnings/rate-service"
	ratepostgres "claimdesk/contexts/creator-earnings/rate-service/adapters/postgres"
	"claimdesk/internal/platform/config"
	"claimdesk/internal/platform/db"
	"claimdesk/internal/platform/db/migrations"
	"claimdesk/internal/platform/httpserver"
	"claimdesk/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	lockSweeper  workers.LockSweeper
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	pg, err := connect(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrationsOnBoot {
		sqlDB, err := pg.SQLDB()
		if err != nil {
			return nil, err
		}
		if err := migrations.Up(sqlDB); err != nil {
			return nil, err
		}
	}

	hub := messaging.NewHub(logger)

	claimRepo := claimpostgres.NewRepository(pg.DB, logger)
	postRepo := postpostgres.NewRepository(pg.DB, logger)
	rateRepo := ratepostgres.NewRepository(pg.DB, logger)

	claimModule := claimservice.NewModule(claimservice.Dependencies{
		Claims:   claimRepo,
		Posts:    claimRepo,
		Rates:    claimRepo,
		Notifier: hub,
		Clock:    claimpostgres.SystemClock{},
		IDGen:    claimpostgres.UUIDGenerator{},
		LockTTL:  cfg.LockTTL,
		Logger:   logger,
	})
	postModule := postservice.NewModule(postservice.Dependencies{
		Repository: postRepo,
		Clock:      postpostgres.SystemClock{},
		IDGen:      postpostgres.UUIDGenerator{},
		Logger:     logger,
	})
	rateModule := rateservice.NewModule(rateservice.Dependencies{
		Repository: rateRepo,
		Clock:      ratepostgres.SystemClock{},
		IDGen:      ratepostgres.UUIDGenerator{},
		Logger:     logger,
	})

	server := httpserver.New(
		claimModule,
		postModule,
		rateModule,
		hub,
		httpserver.Authenticator{Secret: []byte(cfg.JWTSecret)},
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	pg, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	claimRepo := claimpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		lockSweeper: workers.LockSweeper{
			Claims: claimRepo,
			// SSE subscribers live in the api process; there is no one to
			// deliver to here. Sweeps are still visible through the sweep log.
			Notifier:  noop.Notifier{},
			Clock:     claimpostgres.SystemClock{},
			LockTTL:   cfg.LockTTL,
			BatchSize: cfg.LockSweeperBatch,
			Disabled:  !cfg.EnableLockSweeper,
			Logger:    logger,
		},
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}, nil
}

func connect(cfg config.Config) (*db.Postgres, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	return db.Connect(cfg.PostgresDSN)
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.lockSweeper.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
