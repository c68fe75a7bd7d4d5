package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RestoLoyalty_Go/internal/config"
	"github.com/osse101/RestoLoyalty_Go/internal/database"
	"github.com/osse101/RestoLoyalty_Go/internal/database/memory"
	"github.com/osse101/RestoLoyalty_Go/internal/database/postgres"
	"github.com/osse101/RestoLoyalty_Go/internal/eventlog"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// Repositories holds the storage implementations selected by STORAGE_BACKEND
type Repositories struct {
	Loyalty  repository.Loyalty
	Sessions repository.Sessions
	EventLog eventlog.Repository

	// DBPool is nil for the memory backend
	DBPool *pgxpool.Pool
}

// InitializeRepositories opens the configured backend. For postgres it
// connects the pool and applies migrations when AUTO_MIGRATE is set.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	if !cfg.UsesPostgres() {
		slog.Warn(LogMsgUsingMemoryBackend)
		store := memory.NewStore()
		catalog, err := LoadCatalog(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		if err := SeedCatalog(ctx, store, catalog); err != nil {
			return nil, err
		}
		return &Repositories{
			Loyalty:  store,
			Sessions: store,
			EventLog: memory.NewEventLog(),
		}, nil
	}

	slog.Info(LogMsgUsingPostgresBackend, "tx_isolation", cfg.TxIsolation)
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}

	if cfg.AutoMigrate {
		if err := database.RunMigrations(ctx, pool, database.MigrateUp); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgMigrationsApplied)
	}

	loyalty := postgres.NewLoyaltyRepository(pool, postgres.ParseIsolationLevel(cfg.TxIsolation))

	// Migrations seed the default catalog; an explicit file only fills tables left empty.
	if cfg.CatalogFile != "" {
		catalog, err := LoadCatalog(cfg.CatalogFile)
		if err == nil {
			err = SeedCatalog(ctx, loyalty, catalog)
		}
		if err != nil {
			pool.Close()
			return nil, err
		}
	}

	return &Repositories{
		Loyalty:  loyalty,
		Sessions: postgres.NewSessionRepository(pool),
		EventLog: postgres.NewEventLogRepository(pool),
		DBPool:   pool,
	}, nil
}

// Pinger returns the readiness probe target, nil for the memory backend
func (r *Repositories) Pinger() database.Pool {
	if r.DBPool == nil {
		return nil
	}
	return r.DBPool
}

// Close releases the database pool if one was opened
func (r *Repositories) Close() {
	if r.DBPool != nil {
		slog.Info(LogMsgClosingDatabase)
		r.DBPool.Close()
	}
}
