package dto

import "time"

type WithdrawStartRequestDTO struct {
	Amount    string `json:"amount" example:"100.00" validate:"required"`
	DeviceID  string `json:"device_id,omitempty" example:"a31f6c2d"`
	FaceToken string `json:"face_token,omitempty"`
}

type WithdrawStartResponseDTO struct {
	RID       string    `json:"rid" example:"wd:1:0de9b7a1c2f4"`
	Gross     string    `json:"gross" example:"100.00"`
	Fee       string    `json:"fee" example:"5.00"`
	Net       string    `json:"net" example:"95.00"`
	ExpiresAt time.Time `json:"expires_at" example:"2025-06-15T10:15:00Z"`
}

type WithdrawConfirmRequestDTO struct {
	RID         string `json:"rid" example:"wd:1:0de9b7a1c2f4" validate:"required"`
	Method      string `json:"method" example:"bank" validate:"required"`
	Destination string `json:"destination,omitempty" example:"4561261212345467"`
	DeviceID    string `json:"device_id,omitempty" example:"a31f6c2d"`
	FaceToken   string `json:"face_token,omitempty"`
}

type WithdrawConfirmResponseDTO struct {
	SettledID int64  `json:"settled_id" example:"77"`
	Replayed  bool   `json:"replayed" example:"false"`
	Gross     string `json:"gross" example:"100.00"`
	Fee       string `json:"fee" example:"5.00"`
	Net       string `json:"net" example:"95.00"`
}
