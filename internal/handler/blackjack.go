package handler

import (
	"net/http"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/service"
)

// BlackjackHandler handles blackjack deal and action endpoints.
type BlackjackHandler struct {
	svc *service.BlackjackService
}

// NewBlackjackHandler creates a new BlackjackHandler.
func NewBlackjackHandler(svc *service.BlackjackService) *BlackjackHandler {
	return &BlackjackHandler{svc: svc}
}

type dealRequest struct {
	Bets []int64 `json:"bets"`
}

// Deal handles POST /games/blackjack/deal.
func (h *BlackjackHandler) Deal(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req dealRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	round, err := h.svc.Deal(r.Context(), accountID, req.Bets)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, round)
}

type actionRequest struct {
	Action string `json:"action"`
}

// Action handles POST /games/blackjack/action.
func (h *BlackjackHandler) Action(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req actionRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	round, err := h.svc.Action(r.Context(), accountID, req.Action)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, round)
}
