package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adpilot/backend/internal/config"
	"github.com/adpilot/backend/internal/events"
	"github.com/adpilot/backend/internal/models"
	"github.com/adpilot/backend/internal/repositories"
	"github.com/adpilot/backend/internal/wizard"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type WizardService struct {
	draftRepo   *repositories.DraftRepo
	accountRepo *repositories.AccountRepo
	auditRepo   *repositories.AuditRepo
	adsClient   *AdsClient
	publisher   events.Publisher
	rdb         *redis.Client
	cfg         *config.Config
	log         *zap.Logger
}

func NewWizardService(
	draftRepo *repositories.DraftRepo,
	accountRepo *repositories.AccountRepo,
	auditRepo *repositories.AuditRepo,
	adsClient *AdsClient,
	publisher events.Publisher,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) *WizardService {
	return &WizardService{
		draftRepo:   draftRepo,
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		adsClient:   adsClient,
		publisher:   publisher,
		rdb:         rdb,
		cfg:         cfg,
		log:         log,
	}
}

// CreateDraft starts a fresh wizard session. Requires a connected account so
// the account/page preconditions can be checked at submit time.
func (s *WizardService) CreateDraft(ctx context.Context, userID uuid.UUID) (*models.Draft, error) {
	acct, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New(wizard.MsgAccountNotConnected)
	}

	draft := &models.Draft{
		UserID:    userID,
		AccountID: acct.AccountID,
		Status:    models.DraftStatusInProgress,
		Step:      models.StepObjective,
		State: models.WizardState{
			Targeting: models.DefaultTargeting(),
		},
	}
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "draft_created",
		EntityType:  "draft",
		EntityID:    &draft.ID,
	})
	return draft, nil
}

func (s *WizardService) GetDraft(ctx context.Context, id, userID uuid.UUID) (*models.Draft, error) {
	d, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("draft not found")
	}
	if d.UserID != userID {
		return nil, fmt.Errorf("draft not found")
	}
	return d, nil
}

func (s *WizardService) ListDrafts(ctx context.Context, userID uuid.UUID, f repositories.DraftFilter) ([]models.Draft, error) {
	f.UserID = &userID
	return s.draftRepo.List(ctx, f)
}

// ApplyUpdate dispatches one field update through the pure reducer and
// persists the resulting state.
func (s *WizardService) ApplyUpdate(ctx context.Context, id, userID uuid.UUID, u wizard.Update) (*models.Draft, error) {
	d, err := s.GetDraft(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if d.Status != models.DraftStatusInProgress {
		return nil, fmt.Errorf("draft is %s and can no longer be edited", d.Status)
	}

	newState, err := wizard.Apply(d.State, u)
	if err != nil {
		return nil, err
	}

	step := d.Step
	// Changing the objective can change the step sequence out from under the
	// current position; snap back to the objective step when it does.
	if u.Field == wizard.FieldObjective && models.StepIndex(newState.Objective, step) < 0 {
		step = models.StepObjective
	}

	if err := s.draftRepo.UpdateState(ctx, d.ID, step, newState); err != nil {
		return nil, err
	}
	d.State = newState
	d.Step = step
	return d, nil
}

// Navigate moves the wizard between steps. Forward moves are gated by the
// current step's validator; backward and review edit-jumps are free.
func (s *WizardService) Navigate(ctx context.Context, id, userID uuid.UUID, toStep string) (*models.Draft, error) {
	d, err := s.GetDraft(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if d.Status != models.DraftStatusInProgress {
		return nil, fmt.Errorf("draft is %s and can no longer be edited", d.Status)
	}

	if !models.CanNavigate(d.State.Objective, d.Step, toStep) {
		return nil, fmt.Errorf("cannot move from step %q to %q", d.Step, toStep)
	}

	if models.StepIndex(d.State.Objective, toStep) > models.StepIndex(d.State.Objective, d.Step) {
		acct, err := s.accountContext(ctx, userID, d.State)
		if err != nil {
			return nil, err
		}
		if verr := wizard.ValidateStep(d.Step, d.State, acct); verr != nil {
			return nil, verr
		}
	}

	if err := s.draftRepo.UpdateState(ctx, d.ID, toStep, d.State); err != nil {
		return nil, err
	}
	if models.StepIndex(d.State.Objective, toStep) > models.StepIndex(d.State.Objective, d.Step) {
		_ = s.auditRepo.Log(ctx, models.AuditLog{
			ActorUserID: &userID,
			ActorType:   "user",
			Action:      "draft_step_advanced",
			EntityType:  "draft",
			EntityID:    &d.ID,
			Meta:        map[string]any{"from": d.Step, "to": toStep},
		})
	}
	d.Step = toStep
	return d, nil
}

// Submit runs the full pipeline: validate, upload media, create campaign.
// The returned error always carries a user-facing message. Only one
// submission per draft may be in flight.
func (s *WizardService) Submit(ctx context.Context, id, userID uuid.UUID) (*models.Draft, error) {
	d, err := s.GetDraft(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if d.Status == models.DraftStatusSubmitted {
		return nil, fmt.Errorf("this campaign has already been submitted")
	}
	if d.Status != models.DraftStatusInProgress {
		return nil, fmt.Errorf("draft is %s and can no longer be submitted", d.Status)
	}

	lockKey := fmt.Sprintf("submit:%s", d.ID)
	locked, err := s.rdb.SetNX(ctx, lockKey, "1", s.cfg.SubmitLockTTL).Result()
	if err == nil && !locked {
		return nil, fmt.Errorf("a submission for this campaign is already in progress")
	}
	defer s.rdb.Del(context.WithoutCancel(ctx), lockKey)

	acct, err := s.accountContext(ctx, userID, d.State)
	if err != nil {
		return nil, err
	}
	if verr := wizard.ValidateForSubmit(d.State, acct); verr != nil {
		return nil, verr
	}

	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New(wizard.MsgAccountNotConnected)
	}

	up, err := s.uploadCreative(ctx, d, account.AccountID)
	if err != nil {
		s.recordFailure(ctx, d, userID, err)
		return nil, errors.New(wizard.FriendlyError(err.Error()))
	}

	payload := wizard.BuildCreatePayload(d.State, account.AccountID, acct.PageID, up)
	created, err := s.adsClient.CreateCampaign(ctx, account.AccountID, payload)
	if err != nil {
		s.recordFailure(ctx, d, userID, err)
		return nil, errors.New(wizard.FriendlyError(err.Error()))
	}

	if err := s.draftRepo.MarkSubmitted(ctx, d.ID, created.CampaignID, d.State); err != nil {
		return nil, err
	}
	d.Status = models.DraftStatusSubmitted
	d.CampaignID = &created.CampaignID

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "draft_submitted",
		EntityType:  "draft",
		EntityID:    &d.ID,
		Meta:        map[string]any{"campaign_id": created.CampaignID, "objective": d.State.Objective},
	})
	_ = s.publisher.Publish(ctx, events.StreamWizard, events.Event{
		Type:   events.EventCampaignCreated,
		UserID: userID.String(),
		Payload: map[string]any{
			"draft_id":    d.ID.String(),
			"campaign_id": created.CampaignID,
		},
	})

	return d, nil
}

// uploadCreative pushes the draft's creative file to the backend unless a
// result from a previous attempt is still valid for the same file.
func (s *WizardService) uploadCreative(ctx context.Context, d *models.Draft, accountID string) (wizard.UploadResult, error) {
	ad := d.State.FirstCreative()
	if ad == nil || ad.File == nil {
		return wizard.UploadResult{}, nil // existing-post entry, nothing to upload
	}
	f := ad.File

	if d.State.UploadedFileKey == f.StorageKey &&
		(d.State.UploadedImageHash != "" || d.State.UploadedVideoID != "") {
		return wizard.UploadResult{
			ImageHash: d.State.UploadedImageHash,
			VideoID:   d.State.UploadedVideoID,
		}, nil
	}

	resp, err := s.adsClient.UploadMedia(ctx, accountID, UploadMediaRequest{
		StorageKey: f.StorageKey,
		MimeType:   f.MimeType,
		IsVideo:    f.IsVideo(),
	})
	if err != nil {
		return wizard.UploadResult{}, err
	}

	// Retain the result so a create failure does not force a re-upload.
	d.State.UploadedImageHash = resp.ImageHash
	d.State.UploadedVideoID = resp.VideoID
	d.State.UploadedFileKey = f.StorageKey
	if err := s.draftRepo.UpdateState(ctx, d.ID, d.Step, d.State); err != nil {
		s.log.Warn("failed to persist upload result", zap.Error(err))
	}

	return wizard.UploadResult{ImageHash: resp.ImageHash, VideoID: resp.VideoID}, nil
}

func (s *WizardService) recordFailure(ctx context.Context, d *models.Draft, userID uuid.UUID, cause error) {
	s.log.Warn("submission failed",
		zap.String("draft_id", d.ID.String()),
		zap.Error(cause),
	)
	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "draft_submit_failed",
		EntityType:  "draft",
		EntityID:    &d.ID,
		Meta:        map[string]any{"error": cause.Error()},
	})
	_ = s.publisher.Publish(ctx, events.StreamWizard, events.Event{
		Type:   events.EventSubmitFailed,
		UserID: userID.String(),
		Payload: map[string]any{
			"draft_id": d.ID.String(),
			"message":  wizard.FriendlyError(cause.Error()),
		},
	})
}

func (s *WizardService) Abandon(ctx context.Context, id, userID uuid.UUID) error {
	d, err := s.GetDraft(ctx, id, userID)
	if err != nil {
		return err
	}
	if d.Status != models.DraftStatusInProgress {
		return fmt.Errorf("draft is already %s", d.Status)
	}
	if err := s.draftRepo.UpdateStatus(ctx, d.ID, models.DraftStatusAbandoned); err != nil {
		return err
	}
	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "draft_abandoned",
		EntityType:  "draft",
		EntityID:    &d.ID,
	})
	return nil
}

// accountContext assembles the validator view of the connected account,
// fetching only the listings the draft's objective actually needs.
func (s *WizardService) accountContext(ctx context.Context, userID uuid.UUID, state models.WizardState) (wizard.AccountContext, error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return wizard.AccountContext{}, nil // not connected; chain reports it
	}

	actx := wizard.AccountContext{Connected: true}
	if account.PageID != nil {
		actx.PageID = *account.PageID
	}

	if models.ObjectiveRequiresPixel(state.Objective) {
		pixels, err := s.cachedPixels(ctx, account.AccountID)
		if err != nil {
			return actx, errors.New(wizard.FriendlyError(err.Error()))
		}
		for _, p := range pixels {
			actx.PixelIDs = append(actx.PixelIDs, p.ID)
		}
	}
	if models.ObjectiveRequiresLeadForm(state.Objective, state.LeadType) && actx.PageID != "" {
		forms, err := s.cachedLeadForms(ctx, actx.PageID, account.AccountID)
		if err != nil {
			return actx, errors.New(wizard.FriendlyError(err.Error()))
		}
		for _, f := range forms {
			actx.LeadFormIDs = append(actx.LeadFormIDs, f.ID)
		}
	}
	return actx, nil
}

// ListPixels returns the account's pixels, cached briefly in Redis.
func (s *WizardService) ListPixels(ctx context.Context, userID uuid.UUID) ([]models.Pixel, error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New(wizard.MsgAccountNotConnected)
	}
	return s.cachedPixels(ctx, account.AccountID)
}

// ListLeadForms returns the connected page's lead forms, cached briefly.
func (s *WizardService) ListLeadForms(ctx context.Context, userID uuid.UUID) ([]models.LeadForm, error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New(wizard.MsgAccountNotConnected)
	}
	if account.PageID == nil || *account.PageID == "" {
		return nil, errors.New(wizard.MsgPageMissing)
	}
	return s.cachedLeadForms(ctx, *account.PageID, account.AccountID)
}

func (s *WizardService) cachedPixels(ctx context.Context, accountID string) ([]models.Pixel, error) {
	key := fmt.Sprintf("pixels:%s", accountID)
	var pixels []models.Pixel
	if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		if json.Unmarshal(cached, &pixels) == nil {
			return pixels, nil
		}
	}

	pixels, err := s.adsClient.ListPixels(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(pixels); err == nil {
		s.rdb.Set(ctx, key, data, s.cfg.ListingCacheTTL)
	}
	return pixels, nil
}

func (s *WizardService) cachedLeadForms(ctx context.Context, pageID, accountID string) ([]models.LeadForm, error) {
	key := fmt.Sprintf("leadforms:%s:%s", pageID, accountID)
	var forms []models.LeadForm
	if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		if json.Unmarshal(cached, &forms) == nil {
			return forms, nil
		}
	}

	forms, err := s.adsClient.ListLeadForms(ctx, pageID, accountID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(forms); err == nil {
		s.rdb.Set(ctx, key, data, s.cfg.ListingCacheTTL)
	}
	return forms, nil
}

// AbandonStale sweeps idle drafts; called by the worker.
func (s *WizardService) AbandonStale(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.cfg.DraftTTL)
	n, err := s.draftRepo.AbandonStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("abandoned stale drafts", zap.Int64("count", n))
	}
	return n, nil
}
