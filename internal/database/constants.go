package database

import "time"

const (
	// DefaultMinConnections is kept warm unless MaxConns is lower
	DefaultMinConnections int32 = 2

	ConnectAttempts   = 5
	ConnectRetryDelay = 500 * time.Millisecond

	MigrationDialect = "postgres"
)

const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToRunMigrations   = "failed to run migrations"
)

const (
	LogMsgSuccessfullyConnectedToDatabase = "Connected to database"
	LogMsgDatabaseNotReady                = "Database not ready, retrying"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
