package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ParseIsolationLevel maps a config value to a pgx isolation level.
// Unknown or empty values fall back to read committed.
func ParseIsolationLevel(name string) pgx.TxIsoLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case IsolationSerializable:
		return pgx.Serializable
	case IsolationRepeatableRead:
		return pgx.RepeatableRead
	default:
		return pgx.ReadCommitted
	}
}

// parseUserUUID parses a user ID string to uuid.UUID with consistent error message.
func parseUserUUID(userID string) (uuid.UUID, error) {
	u, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", ErrMsgInvalidUserID, domain.ErrUserNotFound)
	}
	return u, nil
}

// mapPgError converts driver errors the services branch on into domain errors.
// Serialization failures, deadlocks and unique races become ErrTransactionConflict
// so the caller's retry loop can run the operation again.
func mapPgError(err error, msg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeSerializationFailure, PgErrorCodeDeadlockDetected, PgErrorCodeUniqueViolation:
			return fmt.Errorf("%s: %w: %s", msg, domain.ErrTransactionConflict, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
