package repository

import (
	"context"
	"errors"
)

// ErrTxClosed is returned by Rollback after the transaction was already committed or rolled back
var ErrTxClosed = errors.New("tx is closed")

// Tx defines the lifecycle shared by all store transactions
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
