package walletservice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dignilife/walletcore/internal/domain"
)

type LedgerRepo interface {
	GetBalance(ctx context.Context, userID int) (decimal.Decimal, error)
	SumForDay(ctx context.Context, userID int, entryType domain.EntryType, day time.Time) (decimal.Decimal, error)
	ListByUser(ctx context.Context, userID int, limit int) ([]domain.LedgerEntry, error)
}

type RateProvider interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

const baseCurrency = "USD"

// Summary is the read-side wallet snapshot. Everything is derived from the
// ledger; the local conversion is display-only and degrades to zero when the
// FX provider is unreachable.
type Summary struct {
	Balance      decimal.Decimal
	TodayEarned  decimal.Decimal
	LastEntry    *domain.LedgerEntry
	Currency     string
	LocalBalance decimal.Decimal
	FXRate       decimal.Decimal
}

type Service struct {
	ledgerRepo LedgerRepo
	rates      RateProvider
	now        func() time.Time
}

func New(ledgerRepo LedgerRepo, rates RateProvider) *Service {
	return &Service{
		ledgerRepo: ledgerRepo,
		rates:      rates,
		now:        time.Now,
	}
}

func (s *Service) GetBalance(ctx context.Context, userID int) (decimal.Decimal, error) {
	balance, err := s.ledgerRepo.GetBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return decimal.Zero, err
	}
	return balance, nil
}

func (s *Service) GetSummary(ctx context.Context, userID int, localCurrency string) (*Summary, error) {
	balance, err := s.ledgerRepo.GetBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}

	now := s.now()
	earned, err := s.ledgerRepo.SumForDay(ctx, userID, domain.EntryEarnCommit, now)
	if err != nil {
		return nil, err
	}
	bonuses, err := s.ledgerRepo.SumForDay(ctx, userID, domain.EntryBonus, now)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Balance:     balance,
		TodayEarned: earned.Add(bonuses),
		Currency:    baseCurrency,
	}

	entries, err := s.ledgerRepo.ListByUser(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		summary.LastEntry = &entries[0]
	}

	if localCurrency != "" && localCurrency != baseCurrency {
		rate, err := s.rates.Rate(ctx, baseCurrency, localCurrency)
		if err != nil {
			// Display conversion only: degrade to the base currency.
			zap.L().Warn("fx rate unavailable, returning base currency only", zap.Error(err))
		} else {
			summary.Currency = localCurrency
			summary.FXRate = rate
			summary.LocalBalance = balance.Mul(rate).Round(2)
		}
	}

	return summary, nil
}

func (s *Service) GetHistory(ctx context.Context, userID int, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	entries, err := s.ledgerRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch ledger history", zap.Error(err))
		return nil, err
	}
	return entries, nil
}
