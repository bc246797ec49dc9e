package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adpilot/backend/internal/events"
	"github.com/adpilot/backend/internal/models"
	"github.com/adpilot/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SyncService reads account sync progress from the ads backend. The status
// is strictly read-only here: the API serves the cached copy and the worker
// polls for changes, publishing progress events for connected clients.
type SyncService struct {
	adsClient   *AdsClient
	accountRepo *repositories.AccountRepo
	rdb         *redis.Client
	publisher   events.Publisher
	cacheTTL    time.Duration
	log         *zap.Logger
}

func NewSyncService(
	adsClient *AdsClient,
	accountRepo *repositories.AccountRepo,
	rdb *redis.Client,
	publisher events.Publisher,
	cacheTTL time.Duration,
	log *zap.Logger,
) *SyncService {
	return &SyncService{
		adsClient:   adsClient,
		accountRepo: accountRepo,
		rdb:         rdb,
		publisher:   publisher,
		cacheTTL:    cacheTTL,
		log:         log,
	}
}

// GetStatus returns the sync status for the user's connected account, from
// cache when fresh.
func (s *SyncService) GetStatus(ctx context.Context, userID uuid.UUID) (*models.SyncStatus, error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("no connected ad account")
	}

	key := cacheKey(account.AccountID)
	if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var status models.SyncStatus
		if json.Unmarshal(cached, &status) == nil {
			return &status, nil
		}
	}

	status, err := s.adsClient.GetSyncStatus(ctx, account.AccountID)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, account.AccountID, status)
	return status, nil
}

// RefreshAll polls the backend for every connected account and publishes a
// progress event when the status changed since the last poll. Run by the
// worker on a ticker.
func (s *SyncService) RefreshAll(ctx context.Context) {
	accounts, err := s.accountRepo.ListConnected(ctx)
	if err != nil {
		s.log.Error("failed to list accounts for sync poll", zap.Error(err))
		return
	}

	for _, account := range accounts {
		status, err := s.adsClient.GetSyncStatus(ctx, account.AccountID)
		if err != nil {
			s.log.Warn("sync poll failed",
				zap.String("account_id", account.AccountID), zap.Error(err))
			continue
		}

		s.cache(ctx, account.AccountID, status)
		if !s.changed(ctx, account.AccountID, status) {
			continue
		}
		s.markPublished(ctx, account.AccountID, status)

		_ = s.publisher.Publish(ctx, events.StreamSync, events.Event{
			Type:   events.EventSyncProgress,
			UserID: account.UserID.String(),
			Payload: map[string]any{
				"account_id":       account.AccountID,
				"status":           status.Status,
				"progress_percent": status.ProgressPercent,
			},
		})
	}
}

// changed compares against the last published status, kept without a TTL so
// an unchanged status is never re-announced after the read cache expires.
func (s *SyncService) changed(ctx context.Context, accountID string, status *models.SyncStatus) bool {
	cached, err := s.rdb.Get(ctx, lastKey(accountID)).Bytes()
	if err != nil {
		return true
	}
	var prev models.SyncStatus
	if json.Unmarshal(cached, &prev) != nil {
		return true
	}
	return prev.Status != status.Status || prev.ProgressPercent != status.ProgressPercent
}

func (s *SyncService) markPublished(ctx context.Context, accountID string, status *models.SyncStatus) {
	if data, err := json.Marshal(status); err == nil {
		s.rdb.Set(ctx, lastKey(accountID), data, 0)
	}
}

func (s *SyncService) cache(ctx context.Context, accountID string, status *models.SyncStatus) {
	if data, err := json.Marshal(status); err == nil {
		s.rdb.Set(ctx, cacheKey(accountID), data, s.cacheTTL)
	}
}

func cacheKey(accountID string) string {
	return fmt.Sprintf("sync:%s", accountID)
}

func lastKey(accountID string) string {
	return fmt.Sprintf("sync:last:%s", accountID)
}
