package handler

import (
	"net/http"
	"strconv"

	"github.com/bokk3/casino/internal/service"
)

// WalletHandler handles balance and transaction history endpoints.
type WalletHandler struct {
	svc *service.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc *service.WalletService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// balanceResponse is the shape of GET /user/balance.
type balanceResponse struct {
	Balance  int64  `json:"balance"`
	Username string `json:"username"`
}

// GetBalance handles GET /user/balance.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	account, err := h.svc.Balance(r.Context(), accountID)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, balanceResponse{
		Balance:  account.Balance,
		Username: account.Username,
	})
}

// GetTransactions handles GET /user/transactions with page/limit pagination.
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)
	kind := r.URL.Query().Get("type")

	result, err := h.svc.Transactions(r.Context(), accountID, kind, page, limit)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
