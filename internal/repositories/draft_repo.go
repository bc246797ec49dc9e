package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adpilot/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DraftRepo struct {
	pool *pgxpool.Pool
}

func NewDraftRepo(pool *pgxpool.Pool) *DraftRepo {
	return &DraftRepo{pool: pool}
}

func (r *DraftRepo) Create(ctx context.Context, d *models.Draft) error {
	state, err := json.Marshal(d.State)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO wizard_drafts (user_id, account_id, status, step, state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, d.UserID, d.AccountID, d.Status, d.Step, state,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DraftRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	var d models.Draft
	var state []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, account_id, status, step, state, campaign_id, created_at, updated_at
		FROM wizard_drafts WHERE id = $1
	`, id).Scan(&d.ID, &d.UserID, &d.AccountID, &d.Status, &d.Step, &state,
		&d.CampaignID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(state, &d.State); err != nil {
		return nil, fmt.Errorf("corrupt draft state %s: %w", id, err)
	}
	return &d, nil
}

// UpdateState persists a new state snapshot and the current step.
func (r *DraftRepo) UpdateState(ctx context.Context, id uuid.UUID, step string, s models.WizardState) error {
	state, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		UPDATE wizard_drafts SET step = $1, state = $2, updated_at = now()
		WHERE id = $3
	`, step, state, id)
	return err
}

func (r *DraftRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE wizard_drafts SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	return err
}

// MarkSubmitted records the created campaign and closes the draft.
func (r *DraftRepo) MarkSubmitted(ctx context.Context, id uuid.UUID, campaignID string, s models.WizardState) error {
	state, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		UPDATE wizard_drafts
		SET status = $1, campaign_id = $2, state = $3, updated_at = now()
		WHERE id = $4
	`, models.DraftStatusSubmitted, campaignID, state, id)
	return err
}

type DraftFilter struct {
	UserID *uuid.UUID
	Status *string
	Limit  int
	Offset int
}

func (r *DraftRepo) List(ctx context.Context, f DraftFilter) ([]models.Draft, error) {
	query := `
		SELECT id, user_id, account_id, status, step, state, campaign_id, created_at, updated_at
		FROM wizard_drafts
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.UserID != nil {
		where = append(where, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, *f.UserID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []models.Draft
	for rows.Next() {
		var d models.Draft
		var state []byte
		if err := rows.Scan(&d.ID, &d.UserID, &d.AccountID, &d.Status, &d.Step, &state,
			&d.CampaignID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(state, &d.State); err != nil {
			return nil, fmt.Errorf("corrupt draft state %s: %w", d.ID, err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// AbandonStale marks in-progress drafts idle since before the cutoff as
// abandoned and returns how many were swept.
func (r *DraftRepo) AbandonStale(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE wizard_drafts SET status = $1, updated_at = now()
		WHERE status = $2 AND updated_at < $3
	`, models.DraftStatusAbandoned, models.DraftStatusInProgress, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
