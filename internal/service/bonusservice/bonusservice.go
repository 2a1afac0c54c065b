package bonusservice

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dignilife/walletcore/internal/bonus"
	"github.com/dignilife/walletcore/internal/domain"
	"github.com/dignilife/walletcore/internal/pg"
)

type LedgerRepo interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) (bool, int64, error)
	SumForDay(ctx context.Context, userID int, entryType domain.EntryType, day time.Time) (decimal.Decimal, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, userID int) (*domain.User, error)
}

var ErrUserNotFound = errors.New("user not found")

type AppliedLine struct {
	RuleName       string
	Amount         decimal.Decimal
	IdempotencyKey string
	EntryID        int64
	Applied        bool
}

// ApplyResult reports the plan that was persisted. Totals come from the plan
// itself, so a retried identical call serializes to the identical result even
// when every line was already applied.
type ApplyResult struct {
	Event        bonus.Trigger
	GrantedTotal decimal.Decimal
	Capped       bool
	Lines        []AppliedLine
}

type Service struct {
	engine     *bonus.Engine
	ledgerRepo LedgerRepo
	userRepo   UserRepo
	txManager  pg.TXManager
	dayCap     decimal.Decimal
	now        func() time.Time
}

func New(engine *bonus.Engine, ledgerRepo LedgerRepo, userRepo UserRepo, txManager pg.TXManager, dayCap decimal.Decimal) *Service {
	return &Service{
		engine:     engine,
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
		txManager:  txManager,
		dayCap:     dayCap,
		now:        time.Now,
	}
}

// Apply plans bonuses for the trigger event and persists every line as a
// BONUS ledger entry. The deterministic line keys make the whole
// plan-and-apply sequence idempotent: concurrent duplicates collapse onto
// the same entries and the second writer simply observes applied=false.
func (s *Service) Apply(ctx context.Context, event bonus.Trigger, userID int, baseValue decimal.Decimal, sourceID string, tags []string) (*ApplyResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to load user for bonus apply", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := s.now()
	var result *ApplyResult

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		granted, err := s.ledgerRepo.SumForDay(ctx, userID, domain.EntryBonus, now)
		if err != nil {
			return err
		}

		plan := s.engine.Plan(bonus.PlanInput{
			Event: event,
			User: bonus.UserContext{
				UserID:       userID,
				TrustOK:      user.TrustOK,
				KYCOK:        user.KYCOK,
				GrantedToday: granted,
			},
			BaseValue: baseValue,
			DayCap:    &s.dayCap,
			SourceID:  sourceID,
			Tags:      tags,
			Now:       now,
		})

		result = &ApplyResult{
			Event:        event,
			GrantedTotal: plan.Total,
			Capped:       plan.Capped,
			Lines:        make([]AppliedLine, 0, len(plan.Lines)),
		}

		for _, line := range plan.Lines {
			entry := &domain.LedgerEntry{
				UserID:         userID,
				Type:           domain.EntryBonus,
				Amount:         line.Amount,
				IdempotencyKey: line.IdempotencyKey,
				ReferenceCode:  line.SourceID,
				Metadata: map[string]string{
					"rule": line.RuleName,
					"day":  line.Day,
				},
				CreatedAt: now,
			}
			applied, entryID, err := s.ledgerRepo.Append(ctx, entry)
			if err != nil {
				return err
			}
			result.Lines = append(result.Lines, AppliedLine{
				RuleName:       line.RuleName,
				Amount:         line.Amount,
				IdempotencyKey: line.IdempotencyKey,
				EntryID:        entryID,
				Applied:        applied,
			})
		}
		return nil
	})
	if err != nil {
		zap.L().Error("failed to apply bonus plan", zap.Error(err))
		return nil, err
	}

	return result, nil
}
