package repo

import (
	"github.com/dignilife/walletcore/internal/guard"
	"github.com/dignilife/walletcore/internal/pg"
	idemrepo "github.com/dignilife/walletcore/internal/repo/idem-repo"
	intentrepo "github.com/dignilife/walletcore/internal/repo/intent-repo"
	ledgerrepo "github.com/dignilife/walletcore/internal/repo/ledger-repo"
	raterepo "github.com/dignilife/walletcore/internal/repo/rate-repo"
	userrepo "github.com/dignilife/walletcore/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo   *userrepo.Repository
	LedgerRepo *ledgerrepo.Repository
	IntentRepo *intentrepo.Repository
	IdemRepo   *idemrepo.Repository
	RateRepo   *raterepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:   userrepo.New(conn),
		LedgerRepo: ledgerrepo.New(conn),
		IntentRepo: intentrepo.New(conn),
		IdemRepo:   idemrepo.New(conn),
		RateRepo:   raterepo.New(conn, txManager),
	}
}

// compile-time wiring checks against the middleware contracts
var (
	_ guard.IdemStore = (*idemrepo.Repository)(nil)
	_ guard.RateStore = (*raterepo.Repository)(nil)
)
