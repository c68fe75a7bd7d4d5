package user

// Transaction operation names, used as metric labels
const OpAdjust = "ledger_adjust"

// RecentLedgerEntries is how many journal rows a balance view carries
const RecentLedgerEntries = 10

// Log messages
const (
	LogMsgUserCreated     = "User created"
	LogMsgBalanceAdjusted = "Balance adjusted"
)
