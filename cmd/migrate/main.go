package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/RestoLoyalty_Go/internal/config"
	"github.com/osse101/RestoLoyalty_Go/internal/database"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [up|down|status|reset]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	command := database.MigrateUp
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.UsesPostgres() {
		log.Fatalf("STORAGE_BACKEND=%s has no schema to migrate", cfg.StorageBackend)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{MaxConns: 2})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, command); err != nil {
		pool.Close()
		log.Fatalf("Migration %q failed: %v", command, err)
	}
	log.Printf("Migration %q complete", command)
}
