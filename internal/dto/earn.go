package dto

type EarnCommitRequestDTO struct {
	SourceID string `json:"source_id" example:"task-501" validate:"required"`
	Amount   string `json:"amount" example:"4.00" validate:"required"`
}

type EarnCommitResponseDTO struct {
	EntryID    int64                  `json:"entry_id" example:"42"`
	Applied    bool                   `json:"applied" example:"true"`
	Amount     string                 `json:"amount" example:"4.00"`
	NewBalance string                 `json:"new_balance" example:"129.40"`
	Bonus      *BonusApplyResponseDTO `json:"bonus,omitempty"`
}
