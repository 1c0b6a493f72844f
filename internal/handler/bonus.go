package handler

import (
	"net/http"

	"github.com/bokk3/casino/internal/service"
)

// BonusHandler handles the daily bonus wheel endpoints.
type BonusHandler struct {
	svc *service.BonusService
}

// NewBonusHandler creates a new BonusHandler.
func NewBonusHandler(svc *service.BonusService) *BonusHandler {
	return &BonusHandler{svc: svc}
}

// Status handles GET /bonus/status.
func (h *BonusHandler) Status(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	status, err := h.svc.Status(r.Context(), accountID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, status)
}

// Spin handles POST /bonus/spin.
func (h *BonusHandler) Spin(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	result, err := h.svc.Spin(r.Context(), accountID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}
