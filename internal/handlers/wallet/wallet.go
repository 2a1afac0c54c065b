package wallet

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dignilife/walletcore/internal/domain"
	"github.com/dignilife/walletcore/internal/dto"
	"github.com/dignilife/walletcore/internal/service/walletservice"
	"github.com/dignilife/walletcore/pkg/auth"
	"github.com/dignilife/walletcore/pkg/utils"
)

type Service interface {
	GetBalance(ctx context.Context, userID int) (decimal.Decimal, error)
	GetSummary(ctx context.Context, userID int, localCurrency string) (*walletservice.Summary, error)
	GetHistory(ctx context.Context, userID int, limit int) ([]domain.LedgerEntry, error)
}

type WalletHandler struct {
	walletService Service
}

func New(walletService Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current wallet balance
//	@Description	Current balance derived from the signed ledger entries of the authenticated user.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/wallet/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.walletService.GetBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Balance:  balance.StringFixed(2),
		Currency: "USD",
	})
}

// GetSummary godoc
//
//	@Summary		Get wallet summary
//	@Description	Balance, today's earnings and the last ledger entry, with an optional local-currency display amount.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Param			currency	query		string	false	"Local display currency code"
//	@Success		200			{object}	dto.SummaryResponseDTO	"Wallet summary"
//	@Failure		401			{object}	utils.Response			"User not authorized"
//	@Failure		500			{object}	utils.Response			"Internal server error"
//	@Router			/api/wallet/summary [get]
func (h *WalletHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	currency := r.URL.Query().Get("currency")

	summary, err := h.walletService.GetSummary(r.Context(), userID, currency)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := dto.SummaryResponseDTO{
		Balance:     summary.Balance.StringFixed(2),
		TodayEarned: summary.TodayEarned.StringFixed(2),
		Currency:    summary.Currency,
	}
	if !summary.FXRate.IsZero() {
		resp.LocalBalance = summary.LocalBalance.StringFixed(2)
		resp.FXRate = summary.FXRate.String()
	}
	if summary.LastEntry != nil {
		entry := toEntryDTO(*summary.LastEntry)
		resp.LastEntry = &entry
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetHistory godoc
//
//	@Summary		Get ledger history
//	@Description	Most recent ledger entries of the authenticated user, newest first.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum number of entries"
//	@Success		200		{array}		dto.LedgerEntryDTO	"Ledger entries"
//	@Success		204		{object}	utils.Response		"No entries"
//	@Failure		401		{object}	utils.Response		"User not authorized"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/wallet/history [get]
func (h *WalletHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.walletService.GetHistory(r.Context(), userID, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch history")
		return
	}
	if len(entries) == 0 {
		utils.RespondWithJSON(w, http.StatusNoContent, []dto.LedgerEntryDTO{})
		return
	}

	resp := make([]dto.LedgerEntryDTO, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, toEntryDTO(entry))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func toEntryDTO(entry domain.LedgerEntry) dto.LedgerEntryDTO {
	return dto.LedgerEntryDTO{
		ID:        entry.ID,
		Type:      string(entry.Type),
		Amount:    entry.Amount.StringFixed(2),
		Reference: entry.ReferenceCode,
		Metadata:  entry.Metadata,
		CreatedAt: entry.CreatedAt,
	}
}
