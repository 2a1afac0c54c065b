package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/dignilife/walletcore/docs"
	"github.com/dignilife/walletcore/internal/guard"
	authhandlers "github.com/dignilife/walletcore/internal/handlers/auth"
	bonushandlers "github.com/dignilife/walletcore/internal/handlers/bonus"
	earnhandlers "github.com/dignilife/walletcore/internal/handlers/earn"
	wallethandlers "github.com/dignilife/walletcore/internal/handlers/wallet"
	withdrawhandlers "github.com/dignilife/walletcore/internal/handlers/withdraw"
	"github.com/dignilife/walletcore/internal/service"
	"github.com/dignilife/walletcore/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
}

type EarnHandler interface {
	Commit(w http.ResponseWriter, r *http.Request)
}

type BonusHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
}

type WithdrawHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	WalletHandler   WalletHandler
	EarnHandler     EarnHandler
	BonusHandler    BonusHandler
	WithdrawHandler WithdrawHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		WalletHandler:   wallethandlers.New(s.WalletService),
		EarnHandler:     earnhandlers.New(s.EarnService),
		BonusHandler:    bonushandlers.New(s.BonusService),
		WithdrawHandler: withdrawhandlers.New(s.WithdrawService),
	}
}

// InitRoutes mounts the API. Mutating wallet routes sit behind the
// rate limiter and the idempotency guard in that order, so rejected
// duplicates still count against the caller's window.
func (h *Handlers) InitRoutes(r chi.Router, g *guard.Guard) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)
	})

	r.Route("/api/wallet", func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/balance", h.WalletHandler.GetBalance)
		r.Get("/summary", h.WalletHandler.GetSummary)
		r.Get("/history", h.WalletHandler.GetHistory)

		r.Group(func(r chi.Router) {
			r.Use(g.RateLimit, g.Idempotency)
			r.Post("/earn", h.EarnHandler.Commit)
			r.Post("/bonus/apply", h.BonusHandler.Apply)
			r.Post("/withdraw/start", h.WithdrawHandler.Start)
			r.Post("/withdraw/confirm", h.WithdrawHandler.Confirm)
		})
	})

	return r
}
