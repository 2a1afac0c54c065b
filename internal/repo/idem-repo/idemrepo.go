package idemrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dignilife/walletcore/internal/domain"
	"github.com/dignilife/walletcore/internal/pg"
)

// Repository backs the idempotency guard with shared, multi-process-safe
// state: cached responses plus short-TTL locks. The lock table doubles as a
// generic put-if-absent primitive (single-use face tokens use it too).
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// GetRecord returns nil when no unexpired cached response exists.
func (r *Repository) GetRecord(ctx context.Context, cacheKey string, now time.Time) (*domain.IdempotencyRecord, error) {
	query := `
		SELECT cache_key, status_code, headers, response_body, expires_at
		FROM idempotency_records
		WHERE cache_key = $1 AND expires_at > $2
	`
	var rec domain.IdempotencyRecord
	var headers []byte
	err := r.db.QueryRow(ctx, query, cacheKey, now).
		Scan(&rec.CacheKey, &rec.StatusCode, &headers, &rec.Body, &rec.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't fetch idempotency record", zap.Error(err))
		return nil, err
	}
	if err := json.Unmarshal(headers, &rec.Headers); err != nil {
		zap.L().Error("can't unmarshal cached headers", zap.Error(err))
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) SaveRecord(ctx context.Context, rec *domain.IdempotencyRecord) error {
	headers, err := json.Marshal(rec.Headers)
	if err != nil {
		zap.L().Error("can't marshal response headers", zap.Error(err))
		return err
	}
	query := `
		INSERT INTO idempotency_records (cache_key, status_code, headers, response_body, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cache_key) DO NOTHING
	`
	_, err = r.db.Exec(ctx, query, rec.CacheKey, rec.StatusCode, headers, rec.Body, rec.ExpiresAt)
	if err != nil {
		zap.L().Error("can't save idempotency record", zap.Error(err))
		return err
	}
	return nil
}

// PutIfAbsent atomically claims lockKey until expiresAt. An expired row may
// be stolen so a crashed holder cannot wedge the key. Returns false when the
// key is currently held.
func (r *Repository) PutIfAbsent(ctx context.Context, lockKey string, now, expiresAt time.Time) (bool, error) {
	query := `
		INSERT INTO kv_locks (lock_key, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (lock_key) DO UPDATE
			SET expires_at = excluded.expires_at
			WHERE kv_locks.expires_at <= $3
		RETURNING lock_key
	`
	var key string
	err := r.db.QueryRow(ctx, query, lockKey, expiresAt, now).Scan(&key)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		zap.L().Error("can't acquire lock", zap.Error(err))
		return false, err
	}
	return true, nil
}

func (r *Repository) Release(ctx context.Context, lockKey string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM kv_locks WHERE lock_key = $1`, lockKey)
	if err != nil {
		zap.L().Error("can't release lock", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM idempotency_records WHERE expires_at <= $1`, now)
	if err != nil {
		zap.L().Error("can't purge idempotency records", zap.Error(err))
		return 0, err
	}
	purged := tag.RowsAffected()

	tag, err = r.db.Exec(ctx, `DELETE FROM kv_locks WHERE expires_at <= $1`, now)
	if err != nil {
		zap.L().Error("can't purge stale locks", zap.Error(err))
		return purged, err
	}
	return purged + tag.RowsAffected(), nil
}
