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

	"github.com/wanderstay/wanderstay-backend/api/routes"
	"github.com/wanderstay/wanderstay-backend/internal/bookings"
	"github.com/wanderstay/wanderstay-backend/internal/guests"
	"github.com/wanderstay/wanderstay-backend/internal/hotels"
	"github.com/wanderstay/wanderstay-backend/internal/inventory"
	"github.com/wanderstay/wanderstay-backend/internal/locations"
	"github.com/wanderstay/wanderstay-backend/internal/roomtypes"
	"github.com/wanderstay/wanderstay-backend/pkg/config"
	"github.com/wanderstay/wanderstay-backend/pkg/db"
	"github.com/wanderstay/wanderstay-backend/pkg/logger"
	"github.com/wanderstay/wanderstay-backend/pkg/metrics"
	"github.com/wanderstay/wanderstay-backend/pkg/migrate"
	"github.com/wanderstay/wanderstay-backend/pkg/redis"
)

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

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)
	bookingMetrics := metrics.NewBookingMetrics(promRegistry)

	gormDB := dbClient.DB()
	hotelRepo := hotels.NewRepository(gormDB)
	locationRepo := locations.NewRepository(gormDB)
	roomTypeRepo := roomtypes.NewRepository(gormDB)
	guestRepo := guests.NewRepository(gormDB)
	bookingRepo := bookings.NewRepository(gormDB)
	inventoryRepo := inventory.NewRepository(gormDB)

	roomTypeDirectory, err := roomtypes.NewDirectory(roomTypeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create room type directory", err)
		os.Exit(1)
	}

	hotelService, err := hotels.NewService(hotelRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create hotel service", err)
		os.Exit(1)
	}
	locationService, err := locations.NewService(locationRepo, hotelRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create location service", err)
		os.Exit(1)
	}
	roomTypeService, err := roomtypes.NewService(roomTypeRepo, locationRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create room type service", err)
		os.Exit(1)
	}
	guestService, err := guests.NewService(guestRepo, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create guest service", err)
		os.Exit(1)
	}
	inventoryService, err := inventory.NewService(inventoryRepo, roomTypeDirectory)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}
	bookingService, err := bookings.NewService(
		bookingRepo,
		inventoryRepo,
		roomTypeDirectory,
		guestRepo,
		dbClient,
		cfg.Booking,
		bookingMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create booking service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			promRegistry,
			httpMetrics,
			guestService,
			hotelService,
			locationService,
			roomTypeService,
			inventoryService,
			bookingService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received, draining connections")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
