package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/jetpack-ops/jetpack/internal/api/http"
	"github.com/jetpack-ops/jetpack/internal/api/http/handlers"
	"github.com/jetpack-ops/jetpack/internal/auth"
	"github.com/jetpack-ops/jetpack/internal/config"
	"github.com/jetpack-ops/jetpack/internal/cron"
	"github.com/jetpack-ops/jetpack/internal/events"
	"github.com/jetpack-ops/jetpack/internal/observability"
	"github.com/jetpack-ops/jetpack/internal/persistence"
	"github.com/jetpack-ops/jetpack/internal/repository"
	"github.com/jetpack-ops/jetpack/internal/service"
	"github.com/jetpack-ops/jetpack/internal/upstream"
	"github.com/jetpack-ops/jetpack/internal/worker"
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

	redisStore := persistence.NewRedis(cfg.Redis, logger)
	defer redisStore.Close()

	upstreamURL, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		logger.Fatal("invalid upstream base url", zap.Error(err))
	}
	upstreamClient, err := upstream.Open(*upstreamURL,
		upstream.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Upstream.RequestTimeoutSec) * time.Second}),
		upstream.WithLogger(logger.Sugar()),
		upstream.WithAPIKey(cfg.Upstream.APIKey),
	)
	if err != nil {
		logger.Fatal("failed to build upstream client", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	brandRepo := repository.NewBrandRepository(pool)
	inviteRepo := repository.NewInvitationRepository(pool)
	claimRepo := repository.NewClaimTicketRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	devRoleService := service.NewDevRoleService(redisStore.Client, cfg.App.IsProduction())
	brandService := service.NewBrandService(brandRepo, upstreamClient, dispatcher)
	inviteService := service.NewInviteService(*cfg, inviteRepo, userRepo, brandRepo, dispatcher)
	userService := service.NewUserService(userRepo)
	shipmentService := service.NewShipmentService(
		upstreamClient,
		claimRepo,
		redisStore.Client,
		time.Duration(cfg.Upstream.ShipmentCacheTTLSec)*time.Second,
		dispatcher,
		logger,
	)
	syncService := service.NewSyncService(redisStore.Client, cfg.Sync.QueueKey)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService, logger)

	var scheduler *cron.Scheduler
	if cfg.Sync.Enabled {
		syncWorker := worker.NewSyncWorker(syncService, upstreamClient, dispatcher, logger)
		syncWorker.Start(ctx)

		scheduler = cron.NewScheduler(syncService, cfg.Sync.CronSchedule, logger)
		if err := scheduler.Start(); err != nil {
			logger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer scheduler.Stop()
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisStore, metrics),
		Auth:           handlers.NewAuthHandler(authService, devRoleService, inviteService),
		Brands:         handlers.NewBrandsHandler(brandService),
		Users:          handlers.NewUsersHandler(userService, inviteService),
		Shipments:      handlers.NewShipmentsHandler(shipmentService),
		Sync:           handlers.NewSyncHandler(syncService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
