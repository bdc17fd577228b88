package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/freedalab/ticketflow/internal/api/http"
	"github.com/freedalab/ticketflow/internal/api/http/handlers"
	"github.com/freedalab/ticketflow/internal/auth"
	"github.com/freedalab/ticketflow/internal/config"
	"github.com/freedalab/ticketflow/internal/enrich"
	"github.com/freedalab/ticketflow/internal/events"
	"github.com/freedalab/ticketflow/internal/ingest"
	"github.com/freedalab/ticketflow/internal/observability"
	"github.com/freedalab/ticketflow/internal/persistence"
	"github.com/freedalab/ticketflow/internal/resolver"
	"github.com/freedalab/ticketflow/internal/store"
	"github.com/freedalab/ticketflow/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	local := store.NewLocalStore(cfg.Ingest.StoreFile(), logger)
	cache := store.NewResultCache(redis.Client, cfg.Resolver.CacheTTL(), logger)

	var primary store.PrimaryStore
	if pool := pg.PoolHandle(); pool != nil {
		primary = store.NewPostgresStore(pool, cfg.Resolver.ScanPageSize)
	}

	ingestor := ingest.NewIngestor(local, cfg.Ingest, dispatcher, metrics, logger)
	if err := ingestor.EnsureDirs(); err != nil {
		logger.Fatal("failed to create data directories", zap.Error(err))
	}

	ticketResolver := resolver.New(resolver.Dependencies{
		Primary:    primary,
		Local:      local,
		Cache:      cache,
		Enricher:   enrich.NewEnricher(nil),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
		Timeout:    cfg.Resolver.RemoteTimeout(),
		Production: cfg.App.IsProduction(),
	})

	// Ingested files change what the next read must return.
	dispatcher.Subscribe(events.EventTicketsIngested, func(ctx context.Context, _ events.Event) error {
		cache.Invalidate(ctx)
		return nil
	})

	ingestWorker, err := worker.StartIngestWorker(ctx, ingestor, cfg.Ingest.CronSchedule, logger)
	if err != nil {
		logger.Fatal("failed to start ingest worker", zap.Error(err))
	}
	if cfg.Ingest.RunOnStartup {
		ingestWorker.Trigger()
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	if !cfg.Auth.Enabled() {
		logger.Warn("AUTH_ADMIN_KEY_HASH not set; mutating routes are unauthenticated")
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(ticketResolver, ingestWorker),
		Auth:           handlers.NewAuthHandler(cfg.Auth, tokens),
		AuthMiddleware: auth.NewMiddleware(tokens),
		AuthEnabled:    cfg.Auth.Enabled(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	ingestWorker.Stop()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
