package dto

import "time"

type BalanceResponseDTO struct {
	Balance  string `json:"balance" example:"125.40"`
	Currency string `json:"currency" example:"USD"`
}

type SummaryResponseDTO struct {
	Balance      string            `json:"balance" example:"125.40"`
	TodayEarned  string            `json:"today_earned" example:"12.30"`
	Currency     string            `json:"currency" example:"USD"`
	LocalBalance string            `json:"local_balance,omitempty" example:"4400.12"`
	FXRate       string            `json:"fx_rate,omitempty" example:"35.09"`
	LastEntry    *LedgerEntryDTO   `json:"last_entry,omitempty"`
}

type LedgerEntryDTO struct {
	ID        int64             `json:"id" example:"42"`
	Type      string            `json:"type" example:"EARN_COMMIT"`
	Amount    string            `json:"amount" example:"4.00"`
	Reference string            `json:"reference,omitempty" example:"task-501"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at" example:"2025-06-15T10:00:00Z"`
}
