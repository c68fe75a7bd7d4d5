package bootstrap

const (
	DirPermission     = 0o755
	LogFilePermission = 0o644
)

// Log files are named service_<timestamp>.log and sort by age
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "service_%s.log"
	LogFileExtension       = ".log"
	// LogFileRetentionCount includes the file opened at startup
	LogFileRetentionCount = 10
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting RestoLoyalty"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// Event system
const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgEventSubscribersRegistered = "Event subscribers registered"
	LogMsgDeadLettersPending         = "Dead-letter file has undelivered events from a previous run"
	LogMsgDeadLetterUnreadable       = "Could not read dead-letter file"
	ErrMsgFailedCreateDeadLetterDir  = "failed to create dead-letter directory"
	ErrMsgFailedCreatePublisher      = "failed to create event publisher"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
)

// Storage
const (
	LogMsgUsingMemoryBackend   = "Using in-memory storage backend"
	LogMsgUsingPostgresBackend = "Using PostgreSQL storage backend"
	LogMsgMigrationsApplied    = "Database migrations applied"
	ErrMsgFailedConnectDB      = "failed to connect to database"
	ErrMsgFailedMigrate        = "failed to run migrations"
	ErrMsgFailedSeedCatalog    = "failed to seed catalog"
	ErrMsgFailedLoadCatalog    = "failed to load catalog file"
)

// Maintenance jobs
const (
	ErrMsgFailedCreateScheduler = "failed to create scheduler"
	ErrMsgFailedScheduleJob     = "failed to schedule maintenance job"
	LogMsgMaintenanceScheduled  = "Maintenance jobs scheduled"
)

// Shutdown
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgSchedulerStopFailed        = "Scheduler shutdown failed"
	LogMsgClosingDatabase            = "Closing database pool"
)
