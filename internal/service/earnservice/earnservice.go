package earnservice

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dignilife/walletcore/internal/bonus"
	"github.com/dignilife/walletcore/internal/domain"
	"github.com/dignilife/walletcore/internal/pg"
	"github.com/dignilife/walletcore/internal/service/bonusservice"
)

type LedgerRepo interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) (bool, int64, error)
	GetBalance(ctx context.Context, userID int) (decimal.Decimal, error)
}

type BonusService interface {
	Apply(ctx context.Context, event bonus.Trigger, userID int, baseValue decimal.Decimal, sourceID string, tags []string) (*bonusservice.ApplyResult, error)
}

var ErrInvalidAmount = errors.New("earning amount must be positive")

// CommitResult describes one settled earning together with the bonus lines
// it triggered and the balance observed inside the same transaction.
type CommitResult struct {
	EntryID    int64
	Applied    bool
	Amount     decimal.Decimal
	Bonus      *bonusservice.ApplyResult
	NewBalance decimal.Decimal
}

type Service struct {
	ledgerRepo LedgerRepo
	bonus      BonusService
	txManager  pg.TXManager
	now        func() time.Time
}

func New(ledgerRepo LedgerRepo, bonusService BonusService, txManager pg.TXManager) *Service {
	return &Service{
		ledgerRepo: ledgerRepo,
		bonus:      bonusService,
		txManager:  txManager,
		now:        time.Now,
	}
}

// Commit settles a completed task earning as an EARN_COMMIT ledger entry
// and immediately applies any bonus rules the commit triggers. Entry key
// derivation mirrors the bonus planner, so resubmitting the same source on
// the same day replays instead of double-crediting.
func (s *Service) Commit(ctx context.Context, userID int, amount decimal.Decimal, sourceID string) (*CommitResult, error) {
	amount = amount.Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	now := s.now()
	day := now.UTC().Format("2006-01-02")
	key := bonus.LineKey(userID, sourceID, string(domain.EntryEarnCommit), day)

	var result *CommitResult
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		entry := &domain.LedgerEntry{
			UserID:         userID,
			Type:           domain.EntryEarnCommit,
			Amount:         amount,
			IdempotencyKey: key,
			ReferenceCode:  sourceID,
			Metadata:       map[string]string{"day": day},
			CreatedAt:      now,
		}
		applied, entryID, err := s.ledgerRepo.Append(ctx, entry)
		if err != nil {
			return err
		}

		bonusResult, err := s.bonus.Apply(ctx, bonus.TriggerEarnCommit, userID, amount, sourceID, nil)
		if err != nil {
			return err
		}

		balance, err := s.ledgerRepo.GetBalance(ctx, userID)
		if err != nil {
			return err
		}

		result = &CommitResult{
			EntryID:    entryID,
			Applied:    applied,
			Amount:     amount,
			Bonus:      bonusResult,
			NewBalance: balance,
		}
		return nil
	})
	if err != nil {
		zap.L().Error("failed to commit earning", zap.Error(err))
		return nil, err
	}

	return result, nil
}
