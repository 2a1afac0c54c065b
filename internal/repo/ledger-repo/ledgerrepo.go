package ledgerrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dignilife/walletcore/internal/domain"
	"github.com/dignilife/walletcore/internal/pg"
)

// Repository is the append-only ledger store. There is no UPDATE or DELETE
// in this package: corrections are new ADJUST entries and the unique
// idempotency_key conflict is the serialization point for duplicate writes.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Append inserts the entry. On idempotency_key conflict it returns
// applied=false together with the existing entry's id and no error:
// "already applied" is a success for money-affecting writes, never a failure.
func (r *Repository) Append(ctx context.Context, entry *domain.LedgerEntry) (bool, int64, error) {
	meta, err := json.Marshal(metaOrEmpty(entry.Metadata))
	if err != nil {
		zap.L().Error("can't marshal entry metadata", zap.Error(err))
		return false, 0, err
	}

	query := `
		INSERT INTO wallet_ledger (user_id, entry_type, amount, idempotency_key, reference_code, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (idempotency_key) DO NOTHING
		RETURNING id
	`
	var id int64
	err = r.db.QueryRow(ctx, query,
		entry.UserID, string(entry.Type), entry.Amount, entry.IdempotencyKey,
		entry.ReferenceCode, meta, entry.CreatedAt,
	).Scan(&id)
	if err == nil {
		entry.ID = id
		return true, id, nil
	}
	if err != pgx.ErrNoRows {
		zap.L().Error("can't append ledger entry", zap.Error(err))
		return false, 0, err
	}

	// Conflict: fetch the already-applied entry.
	err = r.db.QueryRow(ctx, `SELECT id FROM wallet_ledger WHERE idempotency_key = $1`, entry.IdempotencyKey).Scan(&id)
	if err != nil {
		zap.L().Error("can't fetch conflicting ledger entry", zap.Error(err))
		return false, 0, err
	}
	entry.ID = id
	return false, id, nil
}

// GetBalance derives the balance as the sum of all entries. Inside a
// transaction it sees entries written earlier in the same request.
func (r *Repository) GetBalance(ctx context.Context, userID int) (decimal.Decimal, error) {
	var balance decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM wallet_ledger WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		zap.L().Error("can't compute balance", zap.Error(err))
		return decimal.Zero, err
	}
	return balance, nil
}

// SumForDay returns the total of entries of one type written on the given
// UTC calendar day. Used for the per-user daily bonus cap.
func (r *Repository) SumForDay(ctx context.Context, userID int, entryType domain.EntryType, day time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM wallet_ledger
		WHERE user_id = $1
		  AND entry_type = $2
		  AND created_at >= $3
		  AND created_at < $4
	`
	dayStart := time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC)
	err := r.db.QueryRow(ctx, query, userID, string(entryType), dayStart, dayStart.AddDate(0, 0, 1)).Scan(&total)
	if err != nil {
		zap.L().Error("can't compute day total", zap.Error(err))
		return decimal.Zero, err
	}
	return total, nil
}

// FindByTypeAndRef returns the entry of the given type referencing ref,
// or nil when none exists. Withdrawal confirm uses it for replay detection.
func (r *Repository) FindByTypeAndRef(ctx context.Context, userID int, entryType domain.EntryType, ref string) (*domain.LedgerEntry, error) {
	query := `
		SELECT id, user_id, entry_type, amount, idempotency_key, reference_code, created_at
		FROM wallet_ledger
		WHERE user_id = $1 AND entry_type = $2 AND reference_code = $3
	`
	var entry domain.LedgerEntry
	err := r.db.QueryRow(ctx, query, userID, string(entryType), ref).
		Scan(&entry.ID, &entry.UserID, &entry.Type, &entry.Amount, &entry.IdempotencyKey, &entry.ReferenceCode, &entry.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find ledger entry by reference", zap.Error(err))
		return nil, err
	}
	return &entry, nil
}

// ListByUser returns the newest entries first.
func (r *Repository) ListByUser(ctx context.Context, userID int, limit int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT id, user_id, entry_type, amount, idempotency_key, reference_code, created_at
		FROM wallet_ledger
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch ledger entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Type, &entry.Amount, &entry.IdempotencyKey, &entry.ReferenceCode, &entry.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan ledger row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func metaOrEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
