package config

import "time"

// Storage backends
const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

// Transaction isolation levels accepted by TX_ISOLATION
const (
	IsolationReadCommitted  = "read_committed"
	IsolationRepeatableRead = "repeatable_read"
	IsolationSerializable   = "serializable"
)

// Defaults
const (
	DefaultPort                   = 8080
	DefaultDBName                 = "restoloyalty"
	DefaultServiceName            = "restoloyalty"
	DefaultDBMaxConns             = 20
	DefaultDBMaxConnIdleTime      = 5 * time.Minute
	DefaultDBMaxConnLifetime      = 30 * time.Minute
	DefaultSessionCacheSize       = 1024
	DefaultSessionCacheTTL        = time.Minute
	DefaultCatalogCacheTTL        = 30 * time.Second
	DefaultBoosterSweepInterval   = 10 * time.Minute
	DefaultSessionCleanupInterval = time.Hour
	DefaultEventLogRetentionDays  = 90
	DefaultEventMaxRetries        = 3
	DefaultEventRetryDelay        = 2 * time.Second
	DefaultEventDeadLetterPath    = "logs/event_deadletter.jsonl"
	DefaultWorkerCount            = 2
	DefaultWorkerQueueSize        = 32
	DefaultMaxRequestsPerWindow   = 1000
)
