package withdrawservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/dignilife/walletcore/internal/domain"
	"github.com/dignilife/walletcore/internal/pg"
)

type mocks struct {
	ledgerRepo *MockLedgerRepo
	intentRepo *MockIntentRepo
	riskSvc    *MockRiskAssessor
	faceSvc    *MockFaceVerifier
	payments   *MockPaymentProvider
	txManager  *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		ledgerRepo: NewMockLedgerRepo(ctrl),
		intentRepo: NewMockIntentRepo(ctrl),
		riskSvc:    NewMockRiskAssessor(ctrl),
		faceSvc:    NewMockFaceVerifier(ctrl),
		payments:   NewMockPaymentProvider(ctrl),
		txManager:  pg.NewMockTXManager(ctrl),
	}
	service := New(m.ledgerRepo, m.intentRepo, m.riskSvc, m.faceSvc, m.payments, m.txManager, d("5.0"), 15*time.Minute)
	service.now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }
	defer ctrl.Finish()
	return service, m
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func allow() domain.RiskDecision {
	return domain.RiskDecision{Action: domain.RiskAllow, Score: 0.98}
}

func TestStart(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name          string
		gross         string
		faceToken     string
		prepareMock   func()
		expectedFee   string
		expectedNet   string
		expectedError error
	}{
		{
			name:  "Quote and store intent",
			gross: "100.00",
			prepareMock: func() {
				m.riskSvc.EXPECT().Assess(gomock.Any(), 1, d("100.00"), "dev-1").Return(allow(), nil)
				m.intentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, intent *domain.WithdrawalIntent) error {
						assert.Regexp(t, `^wd:1:[0-9a-f]{12}$`, intent.RID)
						assert.True(t, d("5.00").Equal(intent.FeeAmount))
						assert.True(t, d("95.00").Equal(intent.NetAmount))
						assert.Equal(t, service.now().Add(15*time.Minute), intent.ExpiresAt)
						return nil
					},
				)
			},
			expectedFee: "5.00",
			expectedNet: "95.00",
		},
		{
			name:  "Half-up fee rounding",
			gross: "33.30",
			prepareMock: func() {
				m.riskSvc.EXPECT().Assess(gomock.Any(), 1, d("33.30"), "dev-1").Return(allow(), nil)
				m.intentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedFee: "1.67",
			expectedNet: "31.63",
		},
		{
			name:          "Zero amount rejected",
			gross:         "0",
			prepareMock:   func() {},
			expectedError: ErrInvalidAmount,
		},
		{
			name:  "Risk block terminates",
			gross: "500.00",
			prepareMock: func() {
				m.riskSvc.EXPECT().Assess(gomock.Any(), 1, d("500.00"), "dev-1").
					Return(domain.RiskDecision{Action: domain.RiskBlock, Reason: "velocity"}, nil)
			},
			expectedError: ErrRiskBlocked,
		},
		{
			name:  "Challenge without face token",
			gross: "500.00",
			prepareMock: func() {
				m.riskSvc.EXPECT().Assess(gomock.Any(), 1, d("500.00"), "dev-1").
					Return(domain.RiskDecision{Action: domain.RiskChallenge}, nil)
			},
			expectedError: ErrFaceRequired,
		},
		{
			name:      "Challenge satisfied by face token",
			gross:     "500.00",
			faceToken: "tok-1",
			prepareMock: func() {
				m.riskSvc.EXPECT().Assess(gomock.Any(), 1, d("500.00"), "dev-1").
					Return(domain.RiskDecision{Action: domain.RiskChallenge}, nil)
				m.faceSvc.EXPECT().Verify(gomock.Any(), "tok-1", 1, "dev-1", "withdraw:start").Return(nil)
				m.intentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedFee: "25.00",
			expectedNet: "475.00",
		},
		{
			name:      "Rejected face token",
			gross:     "500.00",
			faceToken: "tok-bad",
			prepareMock: func() {
				m.riskSvc.EXPECT().Assess(gomock.Any(), 1, d("500.00"), "dev-1").
					Return(domain.RiskDecision{Action: domain.RiskChallenge}, nil)
				m.faceSvc.EXPECT().Verify(gomock.Any(), "tok-bad", 1, "dev-1", "withdraw:start").
					Return(errors.New("token already used"))
			},
			expectedError: errors.New("token already used"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			result, err := service.Start(context.Background(), 1, d(tt.gross), "dev-1", tt.faceToken)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.True(t, d(tt.expectedFee).Equal(result.FeeAmount))
				assert.True(t, d(tt.expectedNet).Equal(result.NetAmount))
				assert.Regexp(t, `^wd:1:[0-9a-f]{12}$`, result.RID)
			}
		})
	}
}

func TestStartFeeConsumesEverything(t *testing.T) {
	service, m := NewMock(t)
	service.feePercent = d("100")

	m.riskSvc.EXPECT().Assess(gomock.Any(), 1, d("10.00"), "dev-1").Return(allow(), nil)

	result, err := service.Start(context.Background(), 1, d("10.00"), "dev-1", "")
	assert.ErrorIs(t, err, ErrAmountTooSmall)
	assert.Nil(t, result)
}

func TestConfirm(t *testing.T) {
	service, m := NewMock(t)

	const rid = "wd:1:0de9b7a1c2f4"
	intent := &domain.WithdrawalIntent{
		RID:         rid,
		UserID:      1,
		DeviceID:    "dev-1",
		GrossAmount: d("100.00"),
		FeeAmount:   d("5.00"),
		NetAmount:   d("95.00"),
	}

	passThroughTx := func() {
		m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn pg.TransactionalFn) error {
				return fn(ctx)
			},
		)
	}

	tests := []struct {
		name           string
		method         string
		destination    string
		prepareMock    func()
		expectedID     int64
		expectedReplay bool
		expectedError  error
	}{
		{
			name:        "Settle through bank card",
			method:      "bank",
			destination: "4561261212345467",
			prepareMock: func() {
				m.ledgerRepo.EXPECT().FindByTypeAndRef(gomock.Any(), 1, domain.EntryWithdrawFinal, rid).Return(nil, nil)
				m.intentRepo.EXPECT().Get(gomock.Any(), rid, gomock.Any()).Return(intent, nil)
				passThroughTx()
				m.ledgerRepo.EXPECT().GetBalance(gomock.Any(), 1).Return(d("120.00"), nil)
				m.ledgerRepo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, entry *domain.LedgerEntry) (bool, int64, error) {
						assert.Equal(t, domain.EntryWithdrawCut, entry.Type)
						assert.True(t, d("-5.00").Equal(entry.Amount))
						assert.Equal(t, rid+":cut", entry.IdempotencyKey)
						return true, 20, nil
					},
				)
				m.ledgerRepo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, entry *domain.LedgerEntry) (bool, int64, error) {
						assert.Equal(t, domain.EntryWithdrawFinal, entry.Type)
						assert.True(t, d("-95.00").Equal(entry.Amount))
						assert.Equal(t, rid+":final", entry.IdempotencyKey)
						return true, 21, nil
					},
				)
				m.payments.EXPECT().Payout(gomock.Any(), 1, "bank", "4561261212345467", d("95.00")).Return(nil)
				m.intentRepo.EXPECT().Delete(gomock.Any(), rid).Return(nil)
			},
			expectedID: 21,
		},
		{
			name:        "Replay returns the settled entry with the original quote",
			method:      "bank",
			destination: "4561261212345467",
			prepareMock: func() {
				m.ledgerRepo.EXPECT().FindByTypeAndRef(gomock.Any(), 1, domain.EntryWithdrawFinal, rid).
					Return(&domain.LedgerEntry{ID: 21, Amount: d("-95.00")}, nil)
				m.ledgerRepo.EXPECT().FindByTypeAndRef(gomock.Any(), 1, domain.EntryWithdrawCut, rid).
					Return(&domain.LedgerEntry{ID: 20, Amount: d("-5.00")}, nil)
			},
			expectedID:     21,
			expectedReplay: true,
		},
		{
			name:        "Expired or unknown intent",
			method:      "ewallet",
			destination: "acct-9",
			prepareMock: func() {
				m.ledgerRepo.EXPECT().FindByTypeAndRef(gomock.Any(), 1, domain.EntryWithdrawFinal, rid).Return(nil, nil)
				m.intentRepo.EXPECT().Get(gomock.Any(), rid, gomock.Any()).Return(nil, nil)
			},
			expectedError: ErrIntentNotFound,
		},
		{
			name:        "Foreign intent treated as missing",
			method:      "ewallet",
			destination: "acct-9",
			prepareMock: func() {
				m.ledgerRepo.EXPECT().FindByTypeAndRef(gomock.Any(), 1, domain.EntryWithdrawFinal, rid).Return(nil, nil)
				foreign := *intent
				foreign.UserID = 2
				m.intentRepo.EXPECT().Get(gomock.Any(), rid, gomock.Any()).Return(&foreign, nil)
			},
			expectedError: ErrIntentNotFound,
		},
		{
			name:        "Unknown method",
			method:      "crypto",
			destination: "bc1q",
			prepareMock: func() {
				m.ledgerRepo.EXPECT().FindByTypeAndRef(gomock.Any(), 1, domain.EntryWithdrawFinal, rid).Return(nil, nil)
				m.intentRepo.EXPECT().Get(gomock.Any(), rid, gomock.Any()).Return(intent, nil)
			},
			expectedError: ErrUnknownMethod,
		},
		{
			name:        "Card destination failing the Luhn check",
			method:      "prepaid",
			destination: "4561261212345460",
			prepareMock: func() {
				m.ledgerRepo.EXPECT().FindByTypeAndRef(gomock.Any(), 1, domain.EntryWithdrawFinal, rid).Return(nil, nil)
				m.intentRepo.EXPECT().Get(gomock.Any(), rid, gomock.Any()).Return(intent, nil)
			},
			expectedError: ErrInvalidDestination,
		},
		{
			name:        "Insufficient funds at settle time",
			method:      "ewallet",
			destination: "acct-9",
			prepareMock: func() {
				m.ledgerRepo.EXPECT().FindByTypeAndRef(gomock.Any(), 1, domain.EntryWithdrawFinal, rid).Return(nil, nil)
				m.intentRepo.EXPECT().Get(gomock.Any(), rid, gomock.Any()).Return(intent, nil)
				passThroughTx()
				m.ledgerRepo.EXPECT().GetBalance(gomock.Any(), 1).Return(d("40.00"), nil)
			},
			expectedError: ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			result, err := service.Confirm(context.Background(), 1, rid, tt.method, tt.destination, "dev-1", "")
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, result.SettledID)
				assert.Equal(t, tt.expectedReplay, result.Replayed)
				assert.True(t, d("100.00").Equal(result.GrossAmount), "gross %s", result.GrossAmount)
				assert.True(t, d("5.00").Equal(result.FeeAmount), "fee %s", result.FeeAmount)
				assert.True(t, d("95.00").Equal(result.NetAmount), "net %s", result.NetAmount)
			}
		})
	}
}

func TestConfirmFaceTokenForConfirmPhase(t *testing.T) {
	service, m := NewMock(t)

	const rid = "wd:1:aaaabbbbcccc"
	intent := &domain.WithdrawalIntent{RID: rid, UserID: 1, GrossAmount: d("50.00"), FeeAmount: d("2.50"), NetAmount: d("47.50")}

	m.ledgerRepo.EXPECT().FindByTypeAndRef(gomock.Any(), 1, domain.EntryWithdrawFinal, rid).Return(nil, nil)
	m.intentRepo.EXPECT().Get(gomock.Any(), rid, gomock.Any()).Return(intent, nil)
	m.faceSvc.EXPECT().Verify(gomock.Any(), "tok-2", 1, "dev-1", "withdraw:confirm").
		Return(errors.New("token context mismatch"))

	result, err := service.Confirm(context.Background(), 1, rid, "ewallet", "acct-9", "dev-1", "tok-2")
	assert.Error(t, err)
	assert.Nil(t, result)
}
