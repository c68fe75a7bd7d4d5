package memory

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/eventlog"
)

// EventLog keeps event records in memory, oldest first
type EventLog struct {
	mu      sync.Mutex
	records []eventlog.Record
	nextID  int64
	now     func() time.Time
}

var _ eventlog.Repository = (*EventLog)(nil)

// NewEventLog creates an empty in-memory event log
func NewEventLog() *EventLog {
	return &EventLog{now: time.Now}
}

// WithClock overrides the time source used for CreatedAt
func (l *EventLog) WithClock(now func() time.Time) *EventLog {
	l.now = now
	return l
}

// Append stores a copy of rec
func (l *EventLog) Append(ctx context.Context, rec *eventlog.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	rec.ID = l.nextID
	rec.CreatedAt = l.now()
	l.records = append(l.records, *rec)
	return nil
}

// Find walks the log backwards so results come out newest first
func (l *EventLog) Find(ctx context.Context, q eventlog.Query) ([]eventlog.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []eventlog.Record{}
	for i := len(l.records) - 1; i >= 0; i-- {
		if !q.Matches(l.records[i]) {
			continue
		}
		out = append(out, l.records[i])
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

// DeleteBefore drops records created before cutoff
func (l *EventLog) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.records[:0]
	for _, rec := range l.records {
		if rec.CreatedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, rec)
	}
	removed := int64(len(l.records) - len(kept))
	l.records = kept
	return removed, nil
}
