package services

import (
	"context"
	"fmt"

	"github.com/adpilot/backend/internal/models"
	"github.com/adpilot/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountService manages the user's connected ad account.
type AccountService struct {
	accountRepo *repositories.AccountRepo
	auditRepo   *repositories.AuditRepo
	adsClient   *AdsClient
	log         *zap.Logger
}

func NewAccountService(
	accountRepo *repositories.AccountRepo,
	auditRepo *repositories.AuditRepo,
	adsClient *AdsClient,
	log *zap.Logger,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		adsClient:   adsClient,
		log:         log,
	}
}

// Connect verifies the account against the ads backend and stores it with
// its page and currency. The page id is what later gates submission.
func (s *AccountService) Connect(ctx context.Context, userID uuid.UUID, accountID string) (*models.AdAccount, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account_id is required")
	}

	info, err := s.adsClient.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("could not verify ad account: %w", err)
	}

	account := &models.AdAccount{
		UserID:    userID,
		AccountID: info.ID,
		Name:      info.Name,
		PageID:    info.PageID,
		Currency:  info.Currency,
	}
	if account.Currency == "" {
		account.Currency = "USD"
	}
	if err := s.accountRepo.Upsert(ctx, account); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "account_connected",
		EntityType:  "account",
		EntityID:    &account.ID,
		Meta:        map[string]any{"account_id": account.AccountID},
	})
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, userID uuid.UUID) (*models.AdAccount, error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("no connected ad account")
	}
	return account, nil
}

func (s *AccountService) Disconnect(ctx context.Context, userID uuid.UUID) error {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("no connected ad account")
	}
	if err := s.accountRepo.Delete(ctx, userID); err != nil {
		return err
	}
	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "account_disconnected",
		EntityType:  "account",
		EntityID:    &account.ID,
	})
	return nil
}
