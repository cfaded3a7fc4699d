package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/campusmart/storefront/internal/auth"
	"github.com/campusmart/storefront/internal/users"
	"github.com/campusmart/storefront/pkg/config"
	"github.com/campusmart/storefront/pkg/db"
	"github.com/campusmart/storefront/pkg/logger"
	"github.com/campusmart/storefront/pkg/migrate"
)

// seed-admin creates the configured admin account, or promotes it when the
// email is already registered. Re-running it is safe.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed-admin"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed-admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	req, err := auth.SeedRequestFromConfig(cfg.Seed)
	if err != nil {
		logg.Error(ctx, "invalid seed config", err)
		os.Exit(1)
	}

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

	seeder, err := auth.NewAdminSeeder(auth.AdminSeederParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(ctx, "failed to create admin seeder", err)
		os.Exit(1)
	}

	admin, created, err := seeder.Seed(ctx, req)
	if err != nil {
		logg.Error(ctx, "failed to seed admin", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"user_id": admin.ID.String(),
		"email":   admin.Email,
		"created": created,
	})
	logg.Info(ctx, "admin account ready")
}
