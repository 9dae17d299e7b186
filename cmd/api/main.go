package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/poskit/pos-gateway/internal/api/http"
	"github.com/poskit/pos-gateway/internal/api/http/handlers"
	"github.com/poskit/pos-gateway/internal/auth"
	"github.com/poskit/pos-gateway/internal/backend"
	"github.com/poskit/pos-gateway/internal/config"
	"github.com/poskit/pos-gateway/internal/events"
	"github.com/poskit/pos-gateway/internal/observability"
	"github.com/poskit/pos-gateway/internal/persistence"
	"github.com/poskit/pos-gateway/internal/recent"
	"github.com/poskit/pos-gateway/internal/repository"
	"github.com/poskit/pos-gateway/internal/service"
	"github.com/poskit/pos-gateway/internal/session"
	"github.com/poskit/pos-gateway/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var auditRepo repository.AuthAuditRepository
	if pg.Enabled() {
		auditRepo = repository.NewAuthAuditRepository(pg.PoolHandle())
	}

	dispatcher := events.NewInMemoryDispatcher()
	audit := service.NewAuditService(dispatcher, auditRepo, logger)
	worker.StartAuditWorker(audit)

	metrics := observability.NewMetrics()

	if !cfg.Backend.Configured() {
		logger.Warn("NEST_API_URL not set; session and proxy routes will answer 500")
	}
	backendClient := backend.NewClient(cfg.Backend)
	sessions := service.NewSessionService(backendClient, dispatcher, logger, metrics)
	proxy := service.NewProxyService(backendClient, logger)
	cookies := session.NewCookies(cfg.Cookies)

	var recentRepo recent.Repository = recent.NewMemoryRepository()
	if redis.Enabled() {
		recentRepo = recent.NewRedisRepository(redis.Client, cfg.Recent.TTL())
	}

	pages, err := handlers.NewPageHandler(cfg.App.Name, cookies)
	if err != nil {
		logger.Fatal("failed to load page templates", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: !cfg.App.IsDevelopment(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Backend.Configured(), pg, redis, metrics),
		Auth:         handlers.NewAuthHandler(sessions, cookies),
		Proxy:        handlers.NewProxyHandler(proxy, cookies),
		Nav:          handlers.NewNavHandler(),
		RecentOrders: handlers.NewRecentOrdersHandler(recentRepo),
		Audit:        handlers.NewAuditHandler(audit),
		Pages:        pages,
		Guard:        auth.NewEdgeGuard(cookies, sessions, logger),
		Verifier:     sessions,
		Cookies:      cookies,
		WebDir:       cfg.App.WebDir,
	})

	go func() {
		logger.Info("gateway listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("backend", cfg.Backend.BaseURL),
			zap.String("public_url", cfg.App.PublicURL),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
