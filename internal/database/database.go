package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the part of the pgx pool the health check and shutdown path use
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolConfig overrides pgxpool defaults. Zero fields keep the value from the
// connection string, or pgx's own default.
type PoolConfig struct {
	MaxConns        int
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration
}

func (c PoolConfig) apply(cfg *pgxpool.Config) {
	if c.MaxConns > 0 {
		cfg.MaxConns = int32(min(c.MaxConns, math.MaxInt32))
	}
	cfg.MinConns = min(cfg.MaxConns, DefaultMinConnections)
	if c.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = c.MaxConnIdleTime
	}
	if c.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = c.MaxConnLifetime
	}
}

// NewPool opens a pgx pool and waits for the server to answer a ping,
// retrying while the database is still starting.
func NewPool(ctx context.Context, connString string, pc PoolConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}
	pc.apply(cfg)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	delay := ConnectRetryDelay
	for attempt := 1; ; attempt++ {
		err = pool.Ping(ctx)
		if err == nil {
			break
		}
		if attempt == ConnectAttempts {
			pool.Close()
			return nil, fmt.Errorf("%s after %d attempts: %w", ErrMsgFailedToPingDatabase, attempt, err)
		}
		slog.Warn(LogMsgDatabaseNotReady, "attempt", attempt, "retry_in", delay, "error", err)
		select {
		case <-time.After(delay):
			delay *= 2
		case <-ctx.Done():
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, ctx.Err())
		}
	}

	slog.Info(LogMsgSuccessfullyConnectedToDatabase,
		"max_conns", cfg.MaxConns,
		"min_conns", cfg.MinConns)
	return pool, nil
}
