package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryEarnCommit    EntryType = "EARN_COMMIT"
	EntryBonus         EntryType = "BONUS"
	EntryWithdrawCut   EntryType = "WITHDRAW_CUT"
	EntryWithdrawFinal EntryType = "WITHDRAW_FINAL"
	EntryAdjust        EntryType = "ADJUST"
	EntrySystemCut     EntryType = "SYSTEM_CUT"
)

// LedgerEntry is one immutable signed monetary fact. The sign is always
// stored explicitly, never inferred from the entry type. Corrections are
// issued as new ADJUST entries referencing the original, never as updates.
type LedgerEntry struct {
	ID             int64             `db:"id"`
	UserID         int               `db:"user_id"`
	Type           EntryType         `db:"entry_type"`
	Amount         decimal.Decimal   `db:"amount"`
	IdempotencyKey string            `db:"idempotency_key"`
	ReferenceCode  string            `db:"reference_code"`
	Metadata       map[string]string `db:"metadata"`
	CreatedAt      time.Time         `db:"created_at"`
}

// WithdrawalIntent is the frozen preview of a withdrawal awaiting confirm.
// Amounts are fixed at start time; confirm never re-reads client amounts.
type WithdrawalIntent struct {
	RID         string          `db:"rid"`
	UserID      int             `db:"user_id"`
	DeviceID    string          `db:"device_id"`
	GrossAmount decimal.Decimal `db:"gross_amount"`
	FeeAmount   decimal.Decimal `db:"fee_amount"`
	NetAmount   decimal.Decimal `db:"net_amount"`
	CreatedAt   time.Time       `db:"created_at"`
	ExpiresAt   time.Time       `db:"expires_at"`
}

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	TrustOK      bool      `db:"trust_ok"`
	KYCOK        bool      `db:"kyc_ok"`
	CreatedAt    time.Time `db:"created_at"`
}

// IdempotencyRecord is a cached HTTP response kept around so that retries of
// a mutating request can be replayed bit-identically.
type IdempotencyRecord struct {
	CacheKey   string            `db:"cache_key"`
	StatusCode int               `db:"status_code"`
	Headers    map[string]string `db:"headers"`
	Body       []byte            `db:"response_body"`
	ExpiresAt  time.Time         `db:"expires_at"`
}

type RiskAction string

const (
	RiskAllow     RiskAction = "allow"
	RiskChallenge RiskAction = "challenge"
	RiskBlock     RiskAction = "block"
)

type RiskDecision struct {
	Action RiskAction
	Score  float64
	Reason string
}
