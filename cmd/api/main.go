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
	"go.uber.org/multierr"
	"golang.org/x/text/language"

	"github.com/angelmondragon/partsdesk-backend/api/controllers"
	"github.com/angelmondragon/partsdesk-backend/api/middleware"
	"github.com/angelmondragon/partsdesk-backend/api/routes"
	"github.com/angelmondragon/partsdesk-backend/internal/catalog"
	"github.com/angelmondragon/partsdesk-backend/internal/order"
	"github.com/angelmondragon/partsdesk-backend/internal/session"
	"github.com/angelmondragon/partsdesk-backend/internal/storefront"
	"github.com/angelmondragon/partsdesk-backend/pkg/config"
	"github.com/angelmondragon/partsdesk-backend/pkg/instance"
	"github.com/angelmondragon/partsdesk-backend/pkg/logger"
	"github.com/angelmondragon/partsdesk-backend/pkg/metrics"
	"github.com/angelmondragon/partsdesk-backend/pkg/redis"
	"github.com/angelmondragon/partsdesk-backend/pkg/sheets"
)

const (
	shutdownTimeout = 15 * time.Second
	sweepInterval   = 5 * time.Minute
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	catalogMetrics := metrics.NewCatalogMetrics(registry)

	sheetsClient, err := sheets.NewClient(ctx, cfg.Sheets, cfg.GCP, logg)
	if err != nil {
		logg.Error(ctx, "failed to create sheets client", err)
		os.Exit(1)
	}

	locale, err := language.Parse(cfg.Catalog.Locale)
	if err != nil {
		logg.Warn(logg.WithField(ctx, "locale", cfg.Catalog.Locale), "unknown catalog locale, using arabic")
		locale = language.Arabic
	}

	loader, err := catalog.NewLoader(sheetsClient, catalog.LoaderOptions{
		HeaderRows: cfg.Sheets.HeaderRows,
		Locale:     locale,
		Metrics:    catalogMetrics,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create catalog loader", err)
		os.Exit(1)
	}
	cache, err := catalog.NewCache(loader, catalog.CacheOptions{
		TTL:          cfg.Catalog.CacheTTL,
		FailureRetry: cfg.Catalog.FailureRetry,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create catalog cache", err)
		os.Exit(1)
	}

	readiness := map[string]controllers.Pinger{"sheets": sheetsClient}
	var (
		closers    []func() error
		sessions   session.Store
		rateLimits middleware.RateLimitStore
	)

	if cfg.Redis.Configured() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
		readiness["redis"] = redisClient
		rateLimits = redisClient

		if cfg.Session.UsesRedis() {
			store, err := session.NewRedisStore(redisClient, cfg.Session.TTL)
			if err != nil {
				logg.Error(ctx, "failed to create redis session store", err)
				os.Exit(1)
			}
			sessions = store
		}
	}
	if sessions == nil {
		memory := session.NewMemoryStore(cfg.Session.TTL)
		go sweepSessions(ctx, memory, logg)
		sessions = memory
	}

	formatter := order.NewFormatter(order.Options{
		Labels:     order.Labels{BusinessName: cfg.Order.BusinessName, Currency: cfg.Order.Currency},
		TimeLayout: cfg.Order.TimeLayout,
		Location:   cfg.Order.Location(),
	})
	svc, err := storefront.NewService(storefront.ServiceParams{
		Catalog:         cache,
		Formatter:       formatter,
		MessagingURL:    cfg.Order.MessagingURL,
		RecipientNumber: cfg.Order.RecipientNumber,
		Currency:        cfg.Order.Currency,
		PageSize:        cfg.Catalog.PageSize,
		AllOrigins:      cfg.Catalog.AllOrigins,
		Metrics:         catalogMetrics,
		Logger:          logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create storefront service", err)
		os.Exit(1)
	}

	// Warm the cache so the first visitor does not wait on the sheet.
	if snap := cache.Get(ctx); snap.Err != nil {
		logg.Warn(logg.WithField(ctx, "error", snap.Err.Error()), "initial catalog load failed")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":           cfg.App.Env,
		"addr":          addr,
		"session_store": cfg.Session.Store,
		"instance":      instance.GetID(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Deps{
			Storefront: svc,
			Sessions:   sessions,
			RateLimits: rateLimits,
			Readiness:  readiness,
			Gatherer:   registry,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			closeAll(closers, logg)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(logCtx, "graceful shutdown failed", err)
	}
	closeAll(closers, logg)
}

func sweepSessions(ctx context.Context, store *session.MemoryStore, logg *logger.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				logg.Debug(logg.WithField(ctx, "expired", n), "session.sweep")
			}
		}
	}
}

func closeAll(closers []func() error, logg *logger.Logger) {
	var err error
	for _, c := range closers {
		err = multierr.Append(err, c())
	}
	if err != nil {
		logg.Error(context.Background(), "error closing dependencies", err)
	}
}
