package raterepo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dignilife/walletcore/internal/pg"
)

// Repository is the shared sliding-window counter store. Admission runs in
// a transaction holding a per-key advisory lock, so concurrent checks from
// multiple processes cannot both slip under the limit.
type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// Allow admits the event if fewer than limit events exist for
// (identity, route) within the window ending at now. When denied, retryAfter
// says how long until the oldest event leaves the window.
func (r *Repository) Allow(ctx context.Context, identity, route string, limit int, window time.Duration, now time.Time) (bool, time.Duration, error) {
	// Under READ COMMITTED, two admission statements racing on the same key
	// take independent snapshots and could both count limit-1 events. The
	// xact-scoped advisory lock serializes them per (identity, route).
	lockQuery := `SELECT pg_advisory_xact_lock(hashtext($1 || ':' || $2))`
	query := `
		WITH purged AS (
			DELETE FROM rate_events
			WHERE identity = $1 AND route = $2 AND occurred_at < $3
		), current AS (
			SELECT COUNT(*) AS n, MIN(occurred_at) AS oldest
			FROM rate_events
			WHERE identity = $1 AND route = $2 AND occurred_at >= $3
		), admitted AS (
			INSERT INTO rate_events (identity, route, occurred_at)
			SELECT $1, $2, $4 FROM current WHERE n < $5
			RETURNING id
		)
		SELECT EXISTS (SELECT 1 FROM admitted), (SELECT oldest FROM current)
	`
	cutoff := now.Add(-window)

	var ok bool
	var oldest *time.Time
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := r.db.Exec(ctx, lockQuery, identity, route); err != nil {
			return err
		}
		return r.db.QueryRow(ctx, query, identity, route, cutoff, now, limit).Scan(&ok, &oldest)
	})
	if err != nil {
		zap.L().Error("rate window check failed", zap.Error(err))
		return false, 0, err
	}
	if ok {
		return true, 0, nil
	}

	retryAfter := window
	if oldest != nil {
		retryAfter = window - now.Sub(*oldest)
		if retryAfter < 0 {
			retryAfter = 0
		}
	}
	return false, retryAfter, nil
}

func (r *Repository) DeleteOlder(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM rate_events WHERE occurred_at < $1`, cutoff)
	if err != nil {
		zap.L().Error("can't purge rate events", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}
