package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RestoLoyalty_Go/internal/eventlog"
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &eventLogRepository{db: db}
}

var eventColumns = []string{"id", "event_type", "user_id::text", "payload", "metadata", "created_at"}

// Append stores rec. User IDs that are not UUIDs are stored as NULL.
func (r *eventLogRepository) Append(ctx context.Context, rec *eventlog.Record) error {
	payloadJSON, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	var metadataJSON []byte
	if rec.Metadata != nil {
		if metadataJSON, err = json.Marshal(rec.Metadata); err != nil {
			return fmt.Errorf("failed to marshal event metadata: %w", err)
		}
	}

	var uid *uuid.UUID
	if rec.UserID != nil {
		if parsed, err := uuid.Parse(*rec.UserID); err == nil {
			uid = &parsed
		}
	}

	query, args, err := psql.Insert("events").
		Columns("event_type", "user_id", "payload", "metadata").
		Values(rec.Type, uid, payloadJSON, metadataJSON).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	return nil
}

// Find returns the records selected by q, newest first
func (r *eventLogRepository) Find(ctx context.Context, q eventlog.Query) ([]eventlog.Record, error) {
	builder := psql.Select(eventColumns...).From("events").OrderBy("created_at DESC", "id DESC")

	if q.UserID != "" {
		builder = builder.Where("user_id::text = ?", q.UserID)
	}
	if len(q.Types) > 0 {
		builder = builder.Where(squirrel.Eq{"event_type": q.Types})
	}
	if !q.Since.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"created_at": q.Since})
	}
	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// DeleteBefore removes records created before cutoff
func (r *eventLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.Delete("events").Where(squirrel.Lt{"created_at": cutoff}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up events: %w", err)
	}
	return result.RowsAffected(), nil
}

func scanRecords(rows pgx.Rows) ([]eventlog.Record, error) {
	records := []eventlog.Record{}
	for rows.Next() {
		var rec eventlog.Record
		var payloadJSON, metadataJSON []byte

		if err := rows.Scan(&rec.ID, &rec.Type, &rec.UserID, &payloadJSON, &metadataJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
		}
		if err := json.Unmarshal(payloadJSON, &rec.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode event payload: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &rec.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode event metadata: %w", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
