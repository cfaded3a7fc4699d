package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/campusmart/storefront/api/routes"
	"github.com/campusmart/storefront/internal/auth"
	"github.com/campusmart/storefront/internal/cart"
	"github.com/campusmart/storefront/internal/notifications"
	"github.com/campusmart/storefront/internal/orders"
	"github.com/campusmart/storefront/internal/products"
	"github.com/campusmart/storefront/internal/settings"
	"github.com/campusmart/storefront/internal/uploads"
	"github.com/campusmart/storefront/internal/users"
	"github.com/campusmart/storefront/pkg/auth/session"
	"github.com/campusmart/storefront/pkg/config"
	"github.com/campusmart/storefront/pkg/db"
	"github.com/campusmart/storefront/pkg/logger"
	"github.com/campusmart/storefront/pkg/metrics"
	"github.com/campusmart/storefront/pkg/migrate"
	"github.com/campusmart/storefront/pkg/outbox"
	"github.com/campusmart/storefront/pkg/redis"
	"github.com/campusmart/storefront/pkg/storage/gcs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	usersRepo := users.NewRepository(dbClient.DB())
	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		UserRepo:       usersRepo,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	productsRepo := products.NewRepository(dbClient.DB())
	productService, err := products.NewService(productsRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.NewRepository(dbClient.DB()), redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	cartTokens, err := cart.NewTokenIssuer(cfg.JWT, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart token issuer", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cart.NewRedisProvider(redisClient, cfg.Cart.TTL), productsRepo, settingsService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repository:    orders.NewRepository(dbClient.DB()),
		Tx:            dbClient,
		Inventory:     orders.NewCatalogInventory(productsRepo),
		Outbox:        outbox.NewService(outbox.NewRepository(dbClient.DB()), logg),
		Notifications: notificationsService,
		Logger:        logg,
		Metrics:       metrics.NewOrderMetrics(registry),
		Currency:      cfg.Checkout.Currency,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	deps := routes.Dependencies{
		Config:        cfg,
		Logger:        logg,
		DB:            dbClient,
		Redis:         redisClient,
		Sessions:      sessionManager,
		Gatherer:      registry,
		HTTPMetrics:   metrics.NewHTTPMetrics(registry),
		Auth:          authService,
		Register:      registerService,
		Cart:          cartService,
		CartTokens:    cartTokens,
		Orders:        ordersService,
		Products:      productService,
		Settings:      settingsService,
		Notifications: notificationsService,
	}

	if cfg.FeatureFlags.Uploads {
		gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap gcs", err)
			os.Exit(1)
		}
		uploadService, err := uploads.NewService(uploads.ServiceParams{
			Store:  gcsClient,
			GCS:    cfg.GCS,
			Media:  cfg.Media,
			Logger: logg,
		})
		if err != nil {
			logg.Error(context.Background(), "failed to create uploads service", err)
			os.Exit(1)
		}
		deps.GCS = gcsClient
		deps.Uploads = uploadService
	} else {
		logg.Warn(context.Background(), "uploads disabled by feature flag")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "graceful shutdown failed", err)
	}
	logg.Info(shutdownCtx, "api server shut down")
}
