package eventlog

import (
	"context"
	"time"
)

// Record is one persisted loyalty event
type Record struct {
	ID        int64                  `json:"id"`
	Type      string                 `json:"type"`
	UserID    *string                `json:"user_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Query selects records newest first. Zero-valued fields do not filter.
type Query struct {
	UserID string
	Types  []string
	Since  time.Time
	Limit  int
}

// Matches reports whether rec satisfies every set filter of q
func (q Query) Matches(rec Record) bool {
	if q.UserID != "" && (rec.UserID == nil || *rec.UserID != q.UserID) {
		return false
	}
	if !q.Since.IsZero() && rec.CreatedAt.Before(q.Since) {
		return false
	}
	if len(q.Types) == 0 {
		return true
	}
	for _, t := range q.Types {
		if rec.Type == t {
			return true
		}
	}
	return false
}

// Repository persists the audit trail of published events
type Repository interface {
	// Append stores rec, filling ID and CreatedAt
	Append(ctx context.Context, rec *Record) error

	// Find returns the records selected by q
	Find(ctx context.Context, q Query) ([]Record, error)

	// DeleteBefore removes records created before cutoff and reports how many went
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
