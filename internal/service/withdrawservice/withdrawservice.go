package withdrawservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dignilife/walletcore/internal/domain"
	"github.com/dignilife/walletcore/internal/pg"
	"github.com/dignilife/walletcore/pkg/validate"
)

type LedgerRepo interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) (bool, int64, error)
	GetBalance(ctx context.Context, userID int) (decimal.Decimal, error)
	FindByTypeAndRef(ctx context.Context, userID int, entryType domain.EntryType, ref string) (*domain.LedgerEntry, error)
}

type IntentRepo interface {
	Create(ctx context.Context, intent *domain.WithdrawalIntent) error
	Get(ctx context.Context, rid string, now time.Time) (*domain.WithdrawalIntent, error)
	Delete(ctx context.Context, rid string) error
}

type RiskAssessor interface {
	Assess(ctx context.Context, userID int, amount decimal.Decimal, deviceID string) (domain.RiskDecision, error)
}

type FaceVerifier interface {
	Verify(ctx context.Context, token string, userID int, deviceID, op string) error
}

// PaymentProvider pushes the net amount to the external destination.
type PaymentProvider interface {
	Payout(ctx context.Context, userID int, method, destination string, amount decimal.Decimal) error
}

var (
	ErrInvalidAmount      = errors.New("withdrawal amount must be positive")
	ErrAmountTooSmall     = errors.New("amount does not cover the fee")
	ErrRiskBlocked        = errors.New("withdrawal blocked by risk policy")
	ErrFaceRequired       = errors.New("face verification required")
	ErrIntentNotFound     = errors.New("withdrawal request not found or expired")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrUnknownMethod      = errors.New("unsupported withdrawal method")
	ErrInvalidDestination = errors.New("invalid destination number")
)

const (
	opStart   = "withdraw:start"
	opConfirm = "withdraw:confirm"
)

var cardMethods = map[string]bool{
	"bank":    true,
	"prepaid": true,
}

var allowedMethods = map[string]bool{
	"bank":        true,
	"prepaid":     true,
	"online_bank": true,
	"ewallet":     true,
	"topup":       true,
}

// StartResult is the frozen quote handed back to the client. Confirm never
// re-reads amounts from the request, only the rid.
type StartResult struct {
	RID         string
	GrossAmount decimal.Decimal
	FeeAmount   decimal.Decimal
	NetAmount   decimal.Decimal
	ExpiresAt   time.Time
}

type ConfirmResult struct {
	SettledID   int64
	Replayed    bool
	GrossAmount decimal.Decimal
	FeeAmount   decimal.Decimal
	NetAmount   decimal.Decimal
}

type Service struct {
	ledgerRepo LedgerRepo
	intentRepo IntentRepo
	riskSvc    RiskAssessor
	faceSvc    FaceVerifier
	payments   PaymentProvider
	txManager  pg.TXManager
	feePercent decimal.Decimal
	intentTTL  time.Duration
	now        func() time.Time
}

func New(
	ledgerRepo LedgerRepo,
	intentRepo IntentRepo,
	riskSvc RiskAssessor,
	faceSvc FaceVerifier,
	payments PaymentProvider,
	txManager pg.TXManager,
	feePercent decimal.Decimal,
	intentTTL time.Duration,
) *Service {
	return &Service{
		ledgerRepo: ledgerRepo,
		intentRepo: intentRepo,
		riskSvc:    riskSvc,
		faceSvc:    faceSvc,
		payments:   payments,
		txManager:  txManager,
		feePercent: feePercent,
		intentTTL:  intentTTL,
		now:        time.Now,
	}
}

// Start quotes a withdrawal and freezes the amounts behind a short-lived
// intent. Nothing is written to the ledger until Confirm.
func (s *Service) Start(ctx context.Context, userID int, gross decimal.Decimal, deviceID, faceToken string) (*StartResult, error) {
	gross = gross.Round(2)
	if gross.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	decision, err := s.riskSvc.Assess(ctx, userID, gross, deviceID)
	if err != nil {
		zap.L().Error("risk assessment failed", zap.Error(err))
		return nil, err
	}
	switch decision.Action {
	case domain.RiskBlock:
		zap.L().Warn("withdrawal blocked",
			zap.Int("userID", userID),
			zap.String("reason", decision.Reason),
		)
		return nil, ErrRiskBlocked
	case domain.RiskChallenge:
		if faceToken == "" {
			return nil, ErrFaceRequired
		}
	}

	if faceToken != "" {
		if err := s.faceSvc.Verify(ctx, faceToken, userID, deviceID, opStart); err != nil {
			return nil, err
		}
	}

	fee := gross.Mul(s.feePercent).Div(decimal.NewFromInt(100)).Round(2)
	net := gross.Sub(fee)
	if net.LessThanOrEqual(decimal.Zero) {
		return nil, ErrAmountTooSmall
	}

	now := s.now()
	rid := fmt.Sprintf("wd:%d:%s", userID, strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	intent := &domain.WithdrawalIntent{
		RID:         rid,
		UserID:      userID,
		DeviceID:    deviceID,
		GrossAmount: gross,
		FeeAmount:   fee,
		NetAmount:   net,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.intentTTL),
	}
	if err := s.intentRepo.Create(ctx, intent); err != nil {
		zap.L().Error("failed to store withdrawal intent", zap.Error(err))
		return nil, err
	}

	return &StartResult{
		RID:         rid,
		GrossAmount: gross,
		FeeAmount:   fee,
		NetAmount:   net,
		ExpiresAt:   intent.ExpiresAt,
	}, nil
}

// Confirm settles a started withdrawal. The replay lookup runs before the
// intent lookup: once settled the intent is gone, and a retry must still
// serialize the original result instead of a not-found error.
func (s *Service) Confirm(ctx context.Context, userID int, rid, method, destination, deviceID, faceToken string) (*ConfirmResult, error) {
	settled, err := s.ledgerRepo.FindByTypeAndRef(ctx, userID, domain.EntryWithdrawFinal, rid)
	if err != nil {
		return nil, err
	}
	if settled != nil {
		cut, err := s.ledgerRepo.FindByTypeAndRef(ctx, userID, domain.EntryWithdrawCut, rid)
		if err != nil {
			return nil, err
		}
		net := settled.Amount.Neg()
		fee := decimal.Zero
		if cut != nil {
			fee = cut.Amount.Neg()
		}
		return &ConfirmResult{
			SettledID:   settled.ID,
			Replayed:    true,
			GrossAmount: net.Add(fee),
			FeeAmount:   fee,
			NetAmount:   net,
		}, nil
	}

	intent, err := s.intentRepo.Get(ctx, rid, s.now())
	if err != nil {
		return nil, err
	}
	if intent == nil || intent.UserID != userID {
		return nil, ErrIntentNotFound
	}

	if !allowedMethods[method] {
		return nil, ErrUnknownMethod
	}
	if cardMethods[method] && !validate.IsLuna(destination) {
		return nil, ErrInvalidDestination
	}

	if faceToken != "" {
		if err := s.faceSvc.Verify(ctx, faceToken, userID, deviceID, opConfirm); err != nil {
			return nil, err
		}
	}

	var result *ConfirmResult
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		balance, err := s.ledgerRepo.GetBalance(ctx, userID)
		if err != nil {
			return err
		}
		if balance.LessThan(intent.GrossAmount) {
			return ErrInsufficientFunds
		}

		now := s.now()
		meta := map[string]string{"method": method, "destination": destination}

		cut := &domain.LedgerEntry{
			UserID:         userID,
			Type:           domain.EntryWithdrawCut,
			Amount:         intent.FeeAmount.Neg(),
			IdempotencyKey: rid + ":cut",
			ReferenceCode:  rid,
			Metadata:       meta,
			CreatedAt:      now,
		}
		if _, _, err := s.ledgerRepo.Append(ctx, cut); err != nil {
			return err
		}

		final := &domain.LedgerEntry{
			UserID:         userID,
			Type:           domain.EntryWithdrawFinal,
			Amount:         intent.NetAmount.Neg(),
			IdempotencyKey: rid + ":final",
			ReferenceCode:  rid,
			Metadata:       meta,
			CreatedAt:      now,
		}
		_, finalID, err := s.ledgerRepo.Append(ctx, final)
		if err != nil {
			return err
		}

		if err := s.payments.Payout(ctx, userID, method, destination, intent.NetAmount); err != nil {
			return err
		}

		if err := s.intentRepo.Delete(ctx, rid); err != nil {
			return err
		}

		result = &ConfirmResult{
			SettledID:   finalID,
			GrossAmount: intent.GrossAmount,
			FeeAmount:   intent.FeeAmount,
			NetAmount:   intent.NetAmount,
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientFunds) {
			zap.L().Error("failed to settle withdrawal", zap.Error(err))
		}
		return nil, err
	}

	return result, nil
}

// StubPayments always succeeds. Real payout rails live outside this service.
type StubPayments struct{}

func (StubPayments) Payout(_ context.Context, userID int, method, _ string, amount decimal.Decimal) error {
	zap.L().Info("payout dispatched",
		zap.Int("userID", userID),
		zap.String("method", method),
		zap.String("amount", amount.StringFixed(2)),
	)
	return nil
}
