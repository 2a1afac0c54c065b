package earn

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dignilife/walletcore/internal/dto"
	"github.com/dignilife/walletcore/internal/service/earnservice"
	"github.com/dignilife/walletcore/pkg/auth"
	"github.com/dignilife/walletcore/pkg/utils"
)

type Service interface {
	Commit(ctx context.Context, userID int, amount decimal.Decimal, sourceID string) (*earnservice.CommitResult, error)
}

type EarnHandler struct {
	earnService Service
}

func New(earnService Service) *EarnHandler {
	return &EarnHandler{
		earnService: earnService,
	}
}

// Commit godoc
//
//	@Summary		Commit a completed task earning
//	@Description	Settle a finished task as an EARN_COMMIT ledger entry and apply any bonuses it triggers. Resubmitting the same source on the same day replays the original result.
//	@Tags			Earnings
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.EarnCommitRequestDTO	true	"Earning to settle"
//	@Success		200		{object}	dto.EarnCommitResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Non-positive amount"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/earn [post]
func (h *EarnHandler) Commit(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.EarnCommitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SourceID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "source_id is required")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	result, err := h.earnService.Commit(r.Context(), userID, amount, req.SourceID)
	if err != nil {
		switch {
		case errors.Is(err, earnservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	resp := dto.EarnCommitResponseDTO{
		EntryID:    result.EntryID,
		Applied:    result.Applied,
		Amount:     result.Amount.StringFixed(2),
		NewBalance: result.NewBalance.StringFixed(2),
	}
	if result.Bonus != nil {
		bonus := dto.BonusApplyResponseDTO{
			Event:        string(result.Bonus.Event),
			GrantedTotal: result.Bonus.GrantedTotal.StringFixed(2),
			Capped:       result.Bonus.Capped,
			Lines:        make([]dto.BonusLineDTO, 0, len(result.Bonus.Lines)),
		}
		for _, line := range result.Bonus.Lines {
			bonus.Lines = append(bonus.Lines, dto.BonusLineDTO{
				Rule:    line.RuleName,
				Amount:  line.Amount.StringFixed(2),
				EntryID: line.EntryID,
				Applied: line.Applied,
			})
		}
		resp.Bonus = &bonus
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
