package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/RestoLoyalty_Go/internal/event"
	"github.com/osse101/RestoLoyalty_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown
type ShutdownComponents struct {
	Server             *server.Server
	Maintenance        *Maintenance
	ResilientPublisher *event.ResilientPublisher
	Repositories       *Repositories
}

// GracefulShutdown stops the HTTP server first, then background jobs, then
// flushes the event publisher and finally closes storage.
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := c.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if c.Maintenance != nil {
		if err := c.Maintenance.Scheduler.Stop(); err != nil {
			slog.Error(LogMsgSchedulerStopFailed, "error", err)
		}
		c.Maintenance.Pool.Stop()
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	if c.Repositories != nil {
		c.Repositories.Close()
	}

	slog.Info(LogMsgServerStopped)
}
