package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adpilot/backend/internal/config"
	"github.com/adpilot/backend/internal/db"
	"github.com/adpilot/backend/internal/events"
	"github.com/adpilot/backend/internal/repositories"
	"github.com/adpilot/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repos
	draftRepo := repositories.NewDraftRepo(pool)
	accountRepo := repositories.NewAccountRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Services
	bus := events.NewRedisBus(rdb, log)
	adsClient := services.NewAdsClient(cfg.AdsAPIBaseURL, cfg.AdsAPITimeoutMS, log)
	wizardService := services.NewWizardService(draftRepo, accountRepo, auditRepo, adsClient, bus, rdb, cfg, log)
	syncService := services.NewSyncService(adsClient, accountRepo, rdb, bus, cfg.SyncCacheTTL, log)

	log.Info("worker started")

	// Run jobs on tickers
	syncTicker := time.NewTicker(cfg.SyncPollInterval)
	sweepTicker := time.NewTicker(cfg.DraftSweepInterval)
	defer syncTicker.Stop()
	defer sweepTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-syncTicker.C:
			syncService.RefreshAll(ctx)
		case <-sweepTicker.C:
			runDraftSweep(ctx, wizardService, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

func runDraftSweep(ctx context.Context, wizardService *services.WizardService, log *zap.Logger) {
	abandoned, err := wizardService.AbandonStale(ctx)
	if err != nil {
		log.Error("failed to abandon stale drafts", zap.Error(err))
		return
	}
	if abandoned > 0 {
		log.Info("abandoned stale drafts", zap.Int64("count", abandoned))
	}
}
