package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/bootstrap"
	"github.com/osse101/RestoLoyalty_Go/internal/config"
	"github.com/osse101/RestoLoyalty_Go/internal/eventlog"
	"github.com/osse101/RestoLoyalty_Go/internal/multiplier"
	"github.com/osse101/RestoLoyalty_Go/internal/quest"
	"github.com/osse101/RestoLoyalty_Go/internal/server"
	"github.com/osse101/RestoLoyalty_Go/internal/session"
	"github.com/osse101/RestoLoyalty_Go/internal/shop"
	"github.com/osse101/RestoLoyalty_Go/internal/user"
)

const shutdownTimeout = 30 * time.Second

//go:generate go run github.com/swaggo/swag/cmd/swag init -g main.go -d ./,../../internal/handler -o ../../docs

// @title RestoLoyalty API
// @version 1.0
// @description Quests, rewards and the token shop for restaurant diners.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		slog.Warn("Environment validation failed", "error", err)
	} else {
		for _, w := range warnings {
			slog.Warn(w)
		}
	}

	ctx := context.Background()

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}
	publisher := events.Publisher

	eventLogService := eventlog.NewService(repos.EventLog)
	if err := events.Subscribe(eventLogService); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	resolver := multiplier.NewResolver()
	svc := server.Services{
		DB:       repos.Pinger(),
		Quests:   quest.NewService(repos.Loyalty, resolver, publisher),
		Shop:     shop.NewService(repos.Loyalty, resolver, publisher, cfg.CatalogCacheTTL),
		Users:    user.NewService(repos.Loyalty, publisher),
		Sessions: session.NewResolver(repos.Sessions, cfg.SessionCacheSize, cfg.SessionCacheTTL),
		EventLog: eventLogService,
	}

	maintenance, err := bootstrap.StartMaintenance(cfg, repos, eventLogService)
	if err != nil {
		slog.Error("Failed to start maintenance jobs", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		MaxRequests:    cfg.MaxRequests,
		Version:        cfg.Version,
	}, svc)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Maintenance:        maintenance,
		ResilientPublisher: publisher,
		Repositories:       repos,
	})
}
