package dto

type BonusApplyRequestDTO struct {
	Event     string   `json:"event" example:"DAILY_SUBMIT_OK" validate:"required"`
	SourceID  string   `json:"source_id,omitempty" example:"shift-2025-06-15"`
	BaseValue string   `json:"base_value,omitempty" example:"4.00"`
	Tags      []string `json:"tags,omitempty"`
}

type BonusApplyResponseDTO struct {
	Event        string         `json:"event" example:"DAILY_SUBMIT_OK"`
	GrantedTotal string         `json:"granted_total" example:"0.17"`
	Capped       bool           `json:"capped" example:"false"`
	Lines        []BonusLineDTO `json:"lines"`
}

type BonusLineDTO struct {
	Rule    string `json:"rule" example:"daily_flat"`
	Amount  string `json:"amount" example:"0.05"`
	EntryID int64  `json:"entry_id" example:"43"`
	Applied bool   `json:"applied" example:"true"`
}
