package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/invisimart/storefront-web/api/routes"
	"github.com/invisimart/storefront-web/internal/cart"
	"github.com/invisimart/storefront-web/internal/catalog"
	checkoutsvc "github.com/invisimart/storefront-web/internal/checkout"
	"github.com/invisimart/storefront-web/internal/health"
	"github.com/invisimart/storefront-web/pkg/config"
	"github.com/invisimart/storefront-web/pkg/logger"
	"github.com/invisimart/storefront-web/pkg/metrics"
	pkgredis "github.com/invisimart/storefront-web/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "web"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "web",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalogClient, err := catalog.NewClient(cfg.Upstream, logg)
	if err != nil {
		logg.Error(rootCtx, "failed to create upstream client", err)
		os.Exit(1)
	}

	var redisClient *pkgredis.Client
	if cfg.Redis.Configured() {
		redisClient, err = pkgredis.New(rootCtx, cfg.Redis)
		if err != nil {
			logg.Error(rootCtx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	var cartStore cart.Store
	switch cfg.Cart.Backend {
	case "redis":
		if redisClient == nil {
			logg.Error(rootCtx, "cart backend is redis but no redis connection is configured", nil)
			os.Exit(1)
		}
		cartStore = cart.NewRedisStore(redisClient, cfg.Cart.TTL)
	default:
		memStore := cart.NewMemoryStore(cfg.Cart.TTL)
		memStore.StartJanitor(rootCtx, time.Minute)
		cartStore = memStore
	}

	checkoutService, err := checkoutsvc.NewService(cartStore, catalogClient, logg)
	if err != nil {
		logg.Error(rootCtx, "failed to create checkout service", err)
		os.Exit(1)
	}

	registry := prometheus.DefaultRegisterer
	httpMetrics := metrics.NewHTTPMetrics(registry)
	probeMetrics := metrics.NewProbeMetrics(registry)

	monitor := health.NewMonitor(catalogClient, health.DefaultComponents(), cfg.Health.PollInterval, probeMetrics, logg)
	monitor.Start(rootCtx)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(rootCtx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"upstream": cfg.Upstream.BaseURL,
	})
	logg.Info(ctx, "starting storefront web server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Catalog:     catalogClient,
			CartStore:   cartStore,
			Checkout:    checkoutService,
			Monitor:     monitor,
			Redis:       redisClient,
			HTTPMetrics: httpMetrics,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "web server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-rootCtx.Done():
		logg.Info(ctx, "shutdown signal received, draining")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
