package withdraw

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dignilife/walletcore/internal/dto"
	"github.com/dignilife/walletcore/internal/facegate"
	"github.com/dignilife/walletcore/internal/service/withdrawservice"
	"github.com/dignilife/walletcore/pkg/auth"
	"github.com/dignilife/walletcore/pkg/utils"
)

type Service interface {
	Start(ctx context.Context, userID int, gross decimal.Decimal, deviceID, faceToken string) (*withdrawservice.StartResult, error)
	Confirm(ctx context.Context, userID int, rid, method, destination, deviceID, faceToken string) (*withdrawservice.ConfirmResult, error)
}

type WithdrawHandler struct {
	withdrawService Service
}

func New(withdrawService Service) *WithdrawHandler {
	return &WithdrawHandler{
		withdrawService: withdrawService,
	}
}

// Start godoc
//
//	@Summary		Start a withdrawal
//	@Description	Quote the fee and freeze the amounts behind a short-lived request id. No money moves until confirm.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawStartRequestDTO	true	"Amount to withdraw"
//	@Success		200		{object}	dto.WithdrawStartResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Blocked by risk policy or face verification failed"
//	@Failure		422		{object}	utils.Response	"Invalid amount"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/withdraw/start [post]
func (h *WithdrawHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawStartRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	result, err := h.withdrawService.Start(r.Context(), userID, amount, req.DeviceID, req.FaceToken)
	if err != nil {
		respondStartError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawStartResponseDTO{
		RID:       result.RID,
		Gross:     result.GrossAmount.StringFixed(2),
		Fee:       result.FeeAmount.StringFixed(2),
		Net:       result.NetAmount.StringFixed(2),
		ExpiresAt: result.ExpiresAt,
	})
}

// Confirm godoc
//
//	@Summary		Confirm a withdrawal
//	@Description	Settle a started withdrawal: the fee cut and the final debit land atomically and the payout is dispatched. Confirming an already settled request replays the original result.
//	@Tags			Withdrawals
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawConfirmRequestDTO	true	"Request id plus payout destination"
//	@Success		200		{object}	dto.WithdrawConfirmResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		403		{object}	utils.Response	"Face verification failed"
//	@Failure		404		{object}	utils.Response	"Request not found or expired"
//	@Failure		422		{object}	utils.Response	"Unsupported method or bad destination"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/withdraw/confirm [post]
func (h *WithdrawHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawConfirmRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "rid is required")
		return
	}

	result, err := h.withdrawService.Confirm(r.Context(), userID, req.RID, req.Method, req.Destination, req.DeviceID, req.FaceToken)
	if err != nil {
		respondConfirmError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawConfirmResponseDTO{
		SettledID: result.SettledID,
		Replayed:  result.Replayed,
		Gross:     result.GrossAmount.StringFixed(2),
		Fee:       result.FeeAmount.StringFixed(2),
		Net:       result.NetAmount.StringFixed(2),
	})
}

func respondStartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, withdrawservice.ErrInvalidAmount),
		errors.Is(err, withdrawservice.ErrAmountTooSmall):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, withdrawservice.ErrRiskBlocked),
		errors.Is(err, withdrawservice.ErrFaceRequired):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case isFaceError(err):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func respondConfirmError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, withdrawservice.ErrIntentNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, withdrawservice.ErrInsufficientFunds):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, withdrawservice.ErrUnknownMethod),
		errors.Is(err, withdrawservice.ErrInvalidDestination):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case isFaceError(err):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func isFaceError(err error) bool {
	return errors.Is(err, facegate.ErrBadToken) ||
		errors.Is(err, facegate.ErrBadSignature) ||
		errors.Is(err, facegate.ErrContextMismatch) ||
		errors.Is(err, facegate.ErrTokenExpired) ||
		errors.Is(err, facegate.ErrTokenReplay)
}
