package handler

import (
	"net/http"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/service"
)

// SlotsHandler handles the slot machine spin endpoint.
type SlotsHandler struct {
	svc *service.SlotsService
}

// NewSlotsHandler creates a new SlotsHandler.
func NewSlotsHandler(svc *service.SlotsService) *SlotsHandler {
	return &SlotsHandler{svc: svc}
}

type slotsSpinRequest struct {
	Stake int64 `json:"stake"`
}

// Spin handles POST /games/slots/spin.
func (h *SlotsHandler) Spin(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req slotsSpinRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	result, err := h.svc.Spin(r.Context(), accountID, req.Stake)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}
