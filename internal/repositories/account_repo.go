package repositories

import (
	"context"

	"github.com/adpilot/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Upsert stores the connected account for a user, replacing any previous
// connection (one connected account per user).
func (r *AccountRepo) Upsert(ctx context.Context, a *models.AdAccount) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO ad_accounts (user_id, account_id, name, page_id, currency)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			account_id = EXCLUDED.account_id,
			name = EXCLUDED.name,
			page_id = EXCLUDED.page_id,
			currency = EXCLUDED.currency,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`, a.UserID, a.AccountID, a.Name, a.PageID, a.Currency,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AccountRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AdAccount, error) {
	var a models.AdAccount
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, account_id, name, page_id, currency, created_at, updated_at
		FROM ad_accounts WHERE user_id = $1
	`, userID).Scan(&a.ID, &a.UserID, &a.AccountID, &a.Name, &a.PageID,
		&a.Currency, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM ad_accounts WHERE user_id = $1`, userID)
	return err
}

// ListConnected returns every connected account, used by the sync poller.
func (r *AccountRepo) ListConnected(ctx context.Context) ([]models.AdAccount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, account_id, name, page_id, currency, created_at, updated_at
		FROM ad_accounts ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.AdAccount
	for rows.Next() {
		var a models.AdAccount
		if err := rows.Scan(&a.ID, &a.UserID, &a.AccountID, &a.Name, &a.PageID,
			&a.Currency, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}
