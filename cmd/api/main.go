package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pitlanehq/garage-backend/api/routes"
	"github.com/pitlanehq/garage-backend/internal/auth"
	"github.com/pitlanehq/garage-backend/internal/catalog"
	"github.com/pitlanehq/garage-backend/internal/fleet"
	"github.com/pitlanehq/garage-backend/internal/inventory"
	"github.com/pitlanehq/garage-backend/internal/issues"
	"github.com/pitlanehq/garage-backend/internal/users"
	"github.com/pitlanehq/garage-backend/internal/workorders"
	"github.com/pitlanehq/garage-backend/pkg/auth/session"
	"github.com/pitlanehq/garage-backend/pkg/config"
	"github.com/pitlanehq/garage-backend/pkg/db"
	"github.com/pitlanehq/garage-backend/pkg/logger"
	"github.com/pitlanehq/garage-backend/pkg/metrics"
	"github.com/pitlanehq/garage-backend/pkg/migrate"
	"github.com/pitlanehq/garage-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
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
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	inventoryMetrics := metrics.NewInventoryMetrics(registry)

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
	usersService, err := users.NewService(usersRepo, dbClient, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}
	fleetService, err := fleet.NewService(fleet.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create fleet service", err)
		os.Exit(1)
	}
	workOrderService, err := workorders.NewService(workorders.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create work orders service", err)
		os.Exit(1)
	}
	issuesService, err := issues.NewService(issues.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create issues service", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), cfg.Inventory.DefaultMinStockLevel)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	inventoryService, err := inventory.NewService(
		inventory.NewRepository(dbClient.DB()),
		dbClient,
		inventoryMetrics,
		logg,
		cfg.Inventory.MovementPageSize,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
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
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, registry, routes.Services{
			Auth:      authService,
			Users:     usersService,
			Fleet:     fleetService,
			WorkOrder: workOrderService,
			Issues:    issuesService,
			Catalog:   catalogService,
			Inventory: inventoryService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
