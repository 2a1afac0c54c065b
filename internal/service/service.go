package service

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dignilife/walletcore/internal/bonus"
	"github.com/dignilife/walletcore/internal/config"
	"github.com/dignilife/walletcore/internal/facegate"
	"github.com/dignilife/walletcore/internal/fx"
	authhandlers "github.com/dignilife/walletcore/internal/handlers/auth"
	bonushandlers "github.com/dignilife/walletcore/internal/handlers/bonus"
	earnhandlers "github.com/dignilife/walletcore/internal/handlers/earn"
	wallethandlers "github.com/dignilife/walletcore/internal/handlers/wallet"
	withdrawhandlers "github.com/dignilife/walletcore/internal/handlers/withdraw"
	"github.com/dignilife/walletcore/internal/pg"
	"github.com/dignilife/walletcore/internal/repo"
	"github.com/dignilife/walletcore/internal/risk"
	"github.com/dignilife/walletcore/internal/service/authservice"
	"github.com/dignilife/walletcore/internal/service/bonusservice"
	"github.com/dignilife/walletcore/internal/service/earnservice"
	"github.com/dignilife/walletcore/internal/service/walletservice"
	"github.com/dignilife/walletcore/internal/service/withdrawservice"
	pkgauth "github.com/dignilife/walletcore/pkg/auth"
	"github.com/dignilife/walletcore/pkg/clients"
)

type Services struct {
	AuthService     authhandlers.Service
	WalletService   wallethandlers.Service
	EarnService     earnhandlers.Service
	BonusService    bonushandlers.Service
	WithdrawService withdrawhandlers.Service
}

func New(cfg *config.Config, repos *repo.Repositories, txManager pg.TXManager) (*Services, error) {
	feePercent, err := decimal.NewFromString(cfg.FeePercent)
	if err != nil {
		return nil, err
	}
	dayCap, err := decimal.NewFromString(cfg.BonusDayCap)
	if err != nil {
		return nil, err
	}
	engine, err := bonus.NewEngine(bonus.DefaultRules())
	if err != nil {
		return nil, err
	}

	faceVerifier := facegate.New(
		cfg.FaceHMACSecret,
		time.Duration(cfg.FaceTokenTTL)*time.Second,
		repos.IdemRepo,
	)
	rates := fx.New(cfg, clients.NewHTTPClient())

	authService := authservice.New(repos.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})
	walletService := walletservice.New(repos.LedgerRepo, rates)
	bonusService := bonusservice.New(engine, repos.LedgerRepo, repos.UserRepo, txManager, dayCap)
	earnService := earnservice.New(repos.LedgerRepo, bonusService, txManager)
	withdrawService := withdrawservice.New(
		repos.LedgerRepo,
		repos.IntentRepo,
		risk.NewRuleAssessor(),
		faceVerifier,
		withdrawservice.StubPayments{},
		txManager,
		feePercent,
		time.Duration(cfg.IntentTTLMin)*time.Minute,
	)

	zap.L().Info("services wired",
		zap.String("feePercent", feePercent.String()),
		zap.String("bonusDayCap", dayCap.String()),
	)

	return &Services{
		AuthService:     authService,
		WalletService:   walletService,
		EarnService:     earnService,
		BonusService:    bonusService,
		WithdrawService: withdrawService,
	}, nil
}
