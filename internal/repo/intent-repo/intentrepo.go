package intentrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dignilife/walletcore/internal/domain"
	"github.com/dignilife/walletcore/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, intent *domain.WithdrawalIntent) error {
	query := `
		INSERT INTO withdrawal_intents (rid, user_id, device_id, gross_amount, fee_amount, net_amount, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		intent.RID, intent.UserID, intent.DeviceID,
		intent.GrossAmount, intent.FeeAmount, intent.NetAmount,
		intent.CreatedAt, intent.ExpiresAt,
	)
	if err != nil {
		zap.L().Error("can't save withdrawal intent", zap.Error(err))
		return err
	}
	return nil
}

// Get returns nil for unknown rids and for intents past their expiry.
func (r *Repository) Get(ctx context.Context, rid string, now time.Time) (*domain.WithdrawalIntent, error) {
	query := `
		SELECT rid, user_id, device_id, gross_amount, fee_amount, net_amount, created_at, expires_at
		FROM withdrawal_intents
		WHERE rid = $1 AND expires_at > $2
	`
	var intent domain.WithdrawalIntent
	err := r.db.QueryRow(ctx, query, rid, now).Scan(
		&intent.RID, &intent.UserID, &intent.DeviceID,
		&intent.GrossAmount, &intent.FeeAmount, &intent.NetAmount,
		&intent.CreatedAt, &intent.ExpiresAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't fetch withdrawal intent", zap.Error(err))
		return nil, err
	}
	return &intent, nil
}

func (r *Repository) Delete(ctx context.Context, rid string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM withdrawal_intents WHERE rid = $1`, rid)
	if err != nil {
		zap.L().Error("can't delete withdrawal intent", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM withdrawal_intents WHERE expires_at <= $1`, now)
	if err != nil {
		zap.L().Error("can't purge expired intents", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}
