package bonus

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	engine "github.com/dignilife/walletcore/internal/bonus"
	"github.com/dignilife/walletcore/internal/dto"
	"github.com/dignilife/walletcore/internal/service/bonusservice"
	"github.com/dignilife/walletcore/pkg/auth"
	"github.com/dignilife/walletcore/pkg/utils"
)

type Service interface {
	Apply(ctx context.Context, event engine.Trigger, userID int, baseValue decimal.Decimal, sourceID string, tags []string) (*bonusservice.ApplyResult, error)
}

type BonusHandler struct {
	bonusService Service
}

func New(bonusService Service) *BonusHandler {
	return &BonusHandler{
		bonusService: bonusService,
	}
}

var knownTriggers = map[engine.Trigger]bool{
	engine.TriggerDailySubmitOK: true,
	engine.TriggerEarnCommit:    true,
	engine.TriggerSystemPromo:   true,
}

// Apply godoc
//
//	@Summary		Apply bonus rules for an event
//	@Description	Plan and grant the bonuses a trigger event yields for the authenticated user, honoring the daily cap. Duplicate submissions replay instead of double-granting.
//	@Tags			Bonuses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BonusApplyRequestDTO	true	"Trigger event"
//	@Success		200		{object}	dto.BonusApplyResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		422		{object}	utils.Response	"Unknown trigger event"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/bonus/apply [post]
func (h *BonusHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.BonusApplyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event := engine.Trigger(req.Event)
	if !knownTriggers[event] {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Unknown trigger event")
		return
	}

	baseValue := decimal.Zero
	if req.BaseValue != "" {
		var err error
		baseValue, err = decimal.NewFromString(req.BaseValue)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid base value")
			return
		}
	}

	result, err := h.bonusService.Apply(r.Context(), event, userID, baseValue, req.SourceID, req.Tags)
	if err != nil {
		switch {
		case errors.Is(err, bonusservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	resp := dto.BonusApplyResponseDTO{
		Event:        string(result.Event),
		GrantedTotal: result.GrantedTotal.StringFixed(2),
		Capped:       result.Capped,
		Lines:        make([]dto.BonusLineDTO, 0, len(result.Lines)),
	}
	for _, line := range result.Lines {
		resp.Lines = append(resp.Lines, dto.BonusLineDTO{
			Rule:    line.RuleName,
			Amount:  line.Amount.StringFixed(2),
			EntryID: line.EntryID,
			Applied: line.Applied,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
