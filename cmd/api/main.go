package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mitienda/storefront-backend/api/routes"
	"github.com/mitienda/storefront-backend/internal/businessconfig"
	"github.com/mitienda/storefront-backend/internal/cart"
	"github.com/mitienda/storefront-backend/internal/catalog"
	"github.com/mitienda/storefront-backend/internal/orders"
	"github.com/mitienda/storefront-backend/pkg/config"
	"github.com/mitienda/storefront-backend/pkg/db"
	"github.com/mitienda/storefront-backend/pkg/logger"
	"github.com/mitienda/storefront-backend/pkg/metrics"
	"github.com/mitienda/storefront-backend/pkg/migrate"
	"github.com/mitienda/storefront-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	cartMetrics := metrics.NewCartMetrics(registry)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo, logg, cfg.Catalog.MinSearchLength)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	if cfg.Catalog.SeedFixtures && cfg.App.IsDev() {
		seeded, err := catalog.SeedFixtures(context.Background(), catalogRepo)
		if err != nil {
			logg.Error(context.Background(), "failed to seed catalog fixtures", err)
			os.Exit(1)
		}
		if seeded > 0 {
			ctx := logg.WithField(context.Background(), "seeded", seeded)
			logg.Info(ctx, "catalog fixtures seeded")
		}
	}

	cartManager, err := cart.NewManager(
		cart.NewRedisSnapshotStore(redisClient, cfg.Cart.SnapshotTTL),
		logg,
		cartMetrics,
		cfg.Cart.MaxItems,
		cfg.Cart.MaxPerItem,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	configStore, err := businessconfig.NewStore(
		context.Background(),
		businessconfig.NewRedisSnapshotter(redisClient),
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create business config store", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
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
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			HTTPMetrics:   httpMetrics,
			MetricsServer: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),

			DBPinger:    dbClient,
			RedisPinger: redisClient,

			CatalogService: catalogService,
			CartManager:    cartManager,
			ConfigStore:    configStore,
			OrdersService:  ordersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
