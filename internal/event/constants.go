package event

import (
	"os"
	"time"
)

// EventSchemaVersion is stamped on every event built by the New*Event constructors
const EventSchemaVersion = "1.0"

const (
	RetryQueueBufferSize = 1000
	// MaxRetryDelay caps the exponential backoff between retries
	MaxRetryDelay = 5 * time.Minute

	DeadLetterSchemaVersion               = "1.0"
	DeadLetterFilePermissions os.FileMode = 0o644
	// Dead-letter lines above this size are rejected by ReadDeadLetters
	maxDeadLetterLineSize = 1 << 20
)

// Log messages
const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
)

const ErrMsgHandlersFailed = "event handlers failed for"

// CalculateRetryDelay doubles baseDelay for every attempt after the first,
// capped at MaxRetryDelay.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= MaxRetryDelay {
			return MaxRetryDelay
		}
	}
	return delay
}
