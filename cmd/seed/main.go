package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/procureflow/procureflow-backend/internal/requisitions"
	"github.com/procureflow/procureflow-backend/pkg/config"
	"github.com/procureflow/procureflow-backend/pkg/db"
	"github.com/procureflow/procureflow-backend/pkg/logger"
	"github.com/procureflow/procureflow-backend/pkg/migrate"
)

// Seeds the requisition catalog and exits. Intended for fresh environments
// where the api runs with PROCUREFLOW_SEED_CATALOG=false.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

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

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	requisitionService, err := requisitions.NewService(requisitions.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(ctx, "failed to create requisition service", err)
		os.Exit(1)
	}

	if err := requisitionService.EnsureSeeded(ctx); err != nil {
		logg.Error(ctx, "failed to seed requisition catalog", err)
		os.Exit(1)
	}

	logg.Info(ctx, "requisition catalog seeded")
}
