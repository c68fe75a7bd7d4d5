package quest

// Transaction operation names, used as metric labels
const (
	OpClaim          = "quest_claim"
	OpRecordActivity = "quest_activity"
)

// Log messages
const (
	LogMsgClaimSucceeded   = "Quest reward claimed"
	LogMsgClaimRejected    = "Quest claim rejected"
	LogMsgClaimFailed      = "Quest claim failed"
	LogMsgQuestCompleted   = "Quest completed"
	LogMsgActivityRecorded = "Activity recorded"
	LogMsgQuestCreated     = "Quest created"
	LogMsgQuestUpdated     = "Quest updated"
	LogMsgQuestDeactivated = "Quest deactivated"
)

// MaxActivityAmount bounds a single activity report
const MaxActivityAmount = 1000
