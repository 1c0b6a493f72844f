package handler

import (
	"net/http"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/service"
)

// RouletteHandler handles the roulette spin endpoint.
type RouletteHandler struct {
	svc *service.RouletteService
}

// NewRouletteHandler creates a new RouletteHandler.
func NewRouletteHandler(svc *service.RouletteService) *RouletteHandler {
	return &RouletteHandler{svc: svc}
}

type rouletteSpinRequest struct {
	Bets map[string]int64 `json:"bets"`
}

// Spin handles POST /games/roulette/spin.
func (h *RouletteHandler) Spin(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req rouletteSpinRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	result, err := h.svc.Spin(r.Context(), accountID, req.Bets)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}
