package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/logger"
	"github.com/osse101/RestoLoyalty_Go/internal/metrics"
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Rollback after commit is expected on the deferred path
		if !errors.Is(err, ErrTxClosed) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}

// RunInTx begins a transaction, runs fn and commits. Any error from fn or
// Commit rolls the transaction back. A domain.ErrTransactionConflict is
// retried exactly once with a fresh transaction.
func RunInTx[T Tx](ctx context.Context, operation string, begin func(context.Context) (T, error), fn func(tx T) error) error {
	err := runOnce(ctx, begin, fn)
	if !errors.Is(err, domain.ErrTransactionConflict) {
		return err
	}

	logger.FromContext(ctx).Warn("Transaction conflict, retrying", "operation", operation, "error", err)
	metrics.TransactionRetriesTotal.WithLabelValues(operation).Inc()

	if err = runOnce(ctx, begin, fn); err != nil {
		if errors.Is(err, domain.ErrTransactionConflict) {
			metrics.TransactionConflictsTotal.WithLabelValues(operation).Inc()
			return fmt.Errorf("%s: retry exhausted: %w", operation, err)
		}
		return err
	}
	return nil
}

func runOnce[T Tx](ctx context.Context, begin func(context.Context) (T, error), fn func(tx T) error) error {
	tx, err := begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
