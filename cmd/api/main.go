package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adpilot/backend/internal/config"
	"github.com/adpilot/backend/internal/db"
	"github.com/adpilot/backend/internal/events"
	apphttp "github.com/adpilot/backend/internal/http"
	"github.com/adpilot/backend/internal/http/handlers"
	"github.com/adpilot/backend/internal/linkpreview"
	"github.com/adpilot/backend/internal/repositories"
	"github.com/adpilot/backend/internal/services"
	"github.com/adpilot/backend/migrations"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	draftRepo := repositories.NewDraftRepo(pool)
	accountRepo := repositories.NewAccountRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	bus := events.NewRedisBus(rdb, log)

	// Services
	adsClient := services.NewAdsClient(cfg.AdsAPIBaseURL, cfg.AdsAPITimeoutMS, log)
	wizardService := services.NewWizardService(draftRepo, accountRepo, auditRepo, adsClient, bus, rdb, cfg, log)
	accountService := services.NewAccountService(accountRepo, auditRepo, adsClient, log)
	locationService := services.NewLocationService(adsClient, rdb, cfg.SearchCacheTTL, log)
	syncService := services.NewSyncService(adsClient, accountRepo, rdb, bus, cfg.SyncCacheTTL, log)
	previewFetcher := linkpreview.NewFetcher(cfg.PreviewTimeoutMS, cfg.PreviewMaxRetries, log)

	// Handlers
	accountHandler := handlers.NewAccountHandler(accountService, syncService, log)
	wizardHandler := handlers.NewWizardHandler(wizardService, log)
	locationHandler := handlers.NewLocationHandler(locationService, log)
	previewHandler := handlers.NewPreviewHandler(previewFetcher, rdb, cfg.PreviewCacheTTL, log)
	wsHub := handlers.NewWSHub(cfg, bus, locationService, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, accountHandler, wizardHandler, locationHandler, previewHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
