package scheduler

const (
	LogMsgJobScheduled   = "Job scheduled"
	LogMsgJobNotEnqueued = "Scheduled job could not be enqueued"
)
