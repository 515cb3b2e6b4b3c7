package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/borealis-store/borealis-backend/pkg/config"
	"github.com/borealis-store/borealis-backend/pkg/db"
	"github.com/borealis-store/borealis-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	_ = godotenv.Load()

	reset := flag.Bool("reset", true, "delete existing products before inserting the starter catalog")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env, "reset": *reset})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	count, err := seedCatalog(ctx, dbClient, *reset)
	if closeErr := dbClient.Close(); closeErr != nil {
		logg.Error(ctx, "error closing database", closeErr)
	}
	if err != nil {
		logg.Error(ctx, "seed.failed", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "inserted", count), "seed.done")
}
