package main

import (
	"context"
	"fmt"

	"github.com/apratama/letter-seal/internal/config"
	"github.com/apratama/letter-seal/internal/handler/http"
	"github.com/apratama/letter-seal/internal/logger"
	"github.com/apratama/letter-seal/internal/ratelimit"
	"github.com/apratama/letter-seal/internal/server"
	"github.com/apratama/letter-seal/internal/service"
	"github.com/apratama/letter-seal/internal/store"
	"github.com/apratama/letter-seal/internal/workers"
	"github.com/apratama/letter-seal/migrations"
	"github.com/joho/godotenv"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("letter-seal-server")

	// a missing .env file is fine; the environment and flags still apply
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := newStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	limiter, err := newLimiter(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating rate limiter")
	}

	services := service.NewServices(storages, limiter, *cfg, log)
	handler := http.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	janitor := workers.NewJanitor(limiter, cfg.Workers.JanitorInterval, log)
	go janitor.Run(janitorCtx)

	srv.RunServer()
}

// newStorages selects the storage backend: PostgreSQL when a DSN is
// configured, otherwise the in-memory store for DSN-less development runs.
func newStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (store.Storages, error) {
	if cfg.DB.DSN == "" {
		log.Warn().Msg("no database DSN configured, using in-memory storage")
		return store.NewMemoryStorages(), nil
	}

	db, err := store.NewConnectPostgres(ctx, cfg.DB.DSN, log)
	if err != nil {
		return store.Storages{}, err
	}

	if err = migrations.Migrate(db.DB); err != nil {
		return store.Storages{}, err
	}

	return store.NewPostgresStorages(db, log), nil
}

// newLimiter builds the shared failed-attempt limiter. With a rate-limit
// database path configured the entries persist across restarts in SQLite;
// otherwise they live in process memory.
func newLimiter(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*ratelimit.Limiter, error) {
	var (
		entries ratelimit.EntryStore
		err     error
	)

	if path := cfg.Storage.RateLimit.Path; path != "" {
		entries, err = ratelimit.NewSQLiteStore(ctx, path, log)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn().Msg("no rate limit database configured, block state is process-local")
		entries = ratelimit.NewMemoryStore()
	}

	return ratelimit.NewLimiter(entries, ratelimit.Config{
		MaxAttempts:   cfg.Limits.MaxAttempts,
		BlockDuration: cfg.Limits.BlockDuration,
	}, log), nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
