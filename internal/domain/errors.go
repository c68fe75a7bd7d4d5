package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound   = "user not found"
	ErrMsgUnauthorized   = "authentication required"
	ErrMsgSessionExpired = "session expired"

	// Quest errors
	ErrMsgQuestNotFound       = "quest not found"
	ErrMsgQuestNotStarted     = "quest not started"
	ErrMsgQuestNotCompleted   = "quest not completed"
	ErrMsgQuestAlreadyClaimed = "quest reward already claimed"

	// Shop errors
	ErrMsgItemNotFound  = "item not found"
	ErrMsgAlreadyOwned  = "item already owned"
	ErrMsgItemNotActive = "item is not available"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient tokens"
	ErrMsgNegativeBalance   = "balance cannot go below zero"

	// Database/System errors
	ErrMsgTransactionConflict = "transaction conflict"
	ErrMsgDatabaseError       = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound   = errors.New(ErrMsgUserNotFound)
	ErrUnauthorized   = errors.New(ErrMsgUnauthorized)
	ErrSessionExpired = errors.New(ErrMsgSessionExpired)

	// Quest errors
	ErrQuestNotFound       = errors.New(ErrMsgQuestNotFound)
	ErrQuestNotStarted     = errors.New(ErrMsgQuestNotStarted)
	ErrQuestNotCompleted   = errors.New(ErrMsgQuestNotCompleted)
	ErrQuestAlreadyClaimed = errors.New(ErrMsgQuestAlreadyClaimed)

	// Shop errors
	ErrItemNotFound  = errors.New(ErrMsgItemNotFound)
	ErrAlreadyOwned  = errors.New(ErrMsgAlreadyOwned)
	ErrItemNotActive = errors.New(ErrMsgItemNotActive)

	// Ledger errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrNegativeBalance   = errors.New(ErrMsgNegativeBalance)

	// ErrTransactionConflict marks a serialization failure, deadlock or lost
	// optimistic update. Callers retry the whole transaction once.
	ErrTransactionConflict = errors.New(ErrMsgTransactionConflict)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// ErrorKind classifies an error for transport mapping and metrics labels
type ErrorKind string

const (
	ErrorKindNone              ErrorKind = "none"
	ErrorKindUnauthorized      ErrorKind = "unauthorized"
	ErrorKindNotFound          ErrorKind = "not_found"
	ErrorKindInvalidState      ErrorKind = "invalid_state"
	ErrorKindInsufficientFunds ErrorKind = "insufficient_funds"
	ErrorKindInvalidInput      ErrorKind = "invalid_input"
	ErrorKindConflict          ErrorKind = "conflict"
	ErrorKindInternal          ErrorKind = "internal"
)

// KindOf returns the ErrorKind for err
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrSessionExpired):
		return ErrorKindUnauthorized
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrQuestNotFound),
		errors.Is(err, ErrItemNotFound):
		return ErrorKindNotFound
	case errors.Is(err, ErrQuestNotStarted), errors.Is(err, ErrQuestNotCompleted),
		errors.Is(err, ErrQuestAlreadyClaimed), errors.Is(err, ErrAlreadyOwned),
		errors.Is(err, ErrItemNotActive):
		return ErrorKindInvalidState
	case errors.Is(err, ErrInsufficientFunds), errors.Is(err, ErrNegativeBalance):
		return ErrorKindInsufficientFunds
	case errors.Is(err, ErrInvalidInput):
		return ErrorKindInvalidInput
	case errors.Is(err, ErrTransactionConflict):
		return ErrorKindConflict
	default:
		return ErrorKindInternal
	}
}
