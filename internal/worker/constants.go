package worker

import "time"

// ============================================================================
// Pool Defaults
// ============================================================================

const (
	DefaultWorkerCount = 2
	DefaultQueueSize   = 32
	DefaultJobTimeout  = 2 * time.Minute
)

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerJobDone   = "Worker job finished"
	LogMsgWorkerQueueFull = "Worker queue full, job dropped"
)

// ============================================================================
// Log Messages - Maintenance Jobs
// ============================================================================

const (
	LogMsgBackfillCompleted      = "Booster expiry backfill completed"
	LogMsgBackfillSkipped        = "Booster has no duration in its name, skipping"
	LogMsgSessionCleanupComplete = "Expired sessions removed"
)

// ============================================================================
// Job Names
// ============================================================================

const (
	JobNameBoosterBackfill = "booster_expiry_backfill"
	JobNameSessionCleanup  = "session_cleanup"
)

// DefaultBackfillBatchSize bounds how many inventory rows one backfill run touches
const DefaultBackfillBatchSize = 200
