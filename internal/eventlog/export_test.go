package eventlog

import (
	"context"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/event"
)

// HandleEvent exposes the bus handler of s
func HandleEvent(s Service, ctx context.Context, evt event.Event) error {
	return s.(*service).handleEvent(ctx, evt)
}

// WithClock pins the time source of s
func WithClock(s Service, now time.Time) Service {
	s.(*service).now = func() time.Time { return now }
	return s
}
