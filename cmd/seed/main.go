package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/wanderstay/wanderstay-backend/internal/guests"
	"github.com/wanderstay/wanderstay-backend/internal/hotels"
	"github.com/wanderstay/wanderstay-backend/internal/inventory"
	"github.com/wanderstay/wanderstay-backend/internal/locations"
	"github.com/wanderstay/wanderstay-backend/internal/roomtypes"
	"github.com/wanderstay/wanderstay-backend/internal/seed"
	"github.com/wanderstay/wanderstay-backend/pkg/config"
	"github.com/wanderstay/wanderstay-backend/pkg/db"
	"github.com/wanderstay/wanderstay-backend/pkg/logger"
	"github.com/wanderstay/wanderstay-backend/pkg/migrate"
)

// Populates a development database with a browsable hotel directory and a
// handful of guest accounts. Refuses to run in production.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

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

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	if cfg.App.IsProd() {
		logg.Warn(ctx, "seeding is disabled in production")
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	seeder, err := seed.NewSeeder(
		cfg.Seed,
		cfg.Password,
		logg,
		hotels.NewRepository(gormDB),
		locations.NewRepository(gormDB),
		roomtypes.NewRepository(gormDB),
		guests.NewRepository(gormDB),
		inventory.NewRepository(gormDB),
	)
	if err != nil {
		logg.Error(ctx, "failed to create seeder", err)
		os.Exit(1)
	}

	if err := seeder.Run(ctx); err != nil {
		logg.Error(ctx, "seed pass finished with errors", err)
		os.Exit(1)
	}

	logg.Info(ctx, "seed pass complete")
}
