package postgres

// PostgreSQL error codes treated as retryable write conflicts
const (
	PgErrorCodeUniqueViolation      = "23505"
	PgErrorCodeSerializationFailure = "40001"
	PgErrorCodeDeadlockDetected     = "40P01"
	PgErrorCodeForeignKeyViolation = "23503"
)

// Isolation level names accepted by ParseIsolationLevel
const (
	IsolationReadCommitted  = "read_committed"
	IsolationRepeatableRead = "repeatable_read"
	IsolationSerializable   = "serializable"
)

// Error messages
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgInvalidUserID            = "invalid user id"
	ErrMsgFailedToGetUser          = "failed to get user"
	ErrMsgFailedToInsertUser       = "failed to insert user"
	ErrMsgFailedToUpdateBalance    = "failed to update balance"
	ErrMsgFailedToRecordLedger     = "failed to record ledger entry"
	ErrMsgFailedToListLedger       = "failed to list ledger entries"
	ErrMsgFailedToGetQuest         = "failed to get quest"
	ErrMsgFailedToListQuests       = "failed to list quests"
	ErrMsgFailedToSaveQuest        = "failed to save quest"
	ErrMsgFailedToGetUserQuest     = "failed to get user quest"
	ErrMsgFailedToSaveUserQuest    = "failed to save user quest"
	ErrMsgFailedToListUserQuests   = "failed to list user quests"
	ErrMsgFailedToGetShopItem      = "failed to get shop item"
	ErrMsgFailedToListShopItems    = "failed to list shop items"
	ErrMsgFailedToSaveShopItem     = "failed to save shop item"
	ErrMsgFailedToGetInventory     = "failed to get inventory"
	ErrMsgFailedToSaveInventory    = "failed to save inventory item"
	ErrMsgFailedToBuildQuery       = "failed to build query"
	ErrMsgFailedToGetSession       = "failed to get session"
	ErrMsgFailedToSaveSession      = "failed to save session"
	ErrMsgFailedToLogEvent         = "failed to log event"
	ErrMsgFailedToQueryEvents      = "failed to query events"
)
