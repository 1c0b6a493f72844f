package handler

import (
	"net/http"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/provider"
	"github.com/bokk3/casino/internal/service"
	"github.com/google/uuid"
)

// SportsHandler handles sports bet and odds endpoints.
type SportsHandler struct {
	svc  *service.SportsBetService
	feed *provider.OddsFeed
}

// NewSportsHandler creates a new SportsHandler.
func NewSportsHandler(svc *service.SportsBetService, feed *provider.OddsFeed) *SportsHandler {
	return &SportsHandler{svc: svc, feed: feed}
}

type placeBetRequest struct {
	MatchID string  `json:"match_id"`
	Side    string  `json:"side"`
	Odds    float64 `json:"odds"`
	Stake   int64   `json:"stake"`
	Sport   string  `json:"sport"`
	Home    string  `json:"home"`
	Away    string  `json:"away"`
}

type placeBetResponse struct {
	Bet     *service.SportsBetView `json:"bet"`
	Balance int64                  `json:"balance"`
}

// PlaceBet handles POST /sports/bet.
func (h *SportsHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req placeBetRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	input := service.PlaceBetInput{
		MatchID: req.MatchID,
		Side:    req.Side,
		Odds:    provider.DecimalToHundredths(req.Odds),
		Stake:   req.Stake,
		Match: domain.MatchInfo{
			Sport: req.Sport,
			Home:  req.Home,
			Away:  req.Away,
		},
	}

	bet, balance, err := h.svc.Place(r.Context(), accountID, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, placeBetResponse{Bet: bet, Balance: balance})
}

// ActiveBets handles GET /sports/bets/active.
func (h *SportsHandler) ActiveBets(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	bets, err := h.svc.ListActive(r.Context(), accountID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"bets": bets})
}

type settleBetRequest struct {
	BetID string `json:"bet_id"`
	Won   bool   `json:"won"`
}

// SettleBet handles POST /sports/settle.
func (h *SportsHandler) SettleBet(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromRequest(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req settleBetRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	betID, err := uuid.Parse(req.BetID)
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid bet id"))
		return
	}

	result, err := h.svc.Settle(r.Context(), accountID, betID, req.Won)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// Odds handles GET /sports/odds. The sport query parameter selects the
// fixture list; responses come from the feed's cache when fresh.
func (h *SportsHandler) Odds(w http.ResponseWriter, r *http.Request) {
	if _, err := accountIDFromRequest(r); err != nil {
		RespondError(w, err)
		return
	}

	sport := r.URL.Query().Get("sport")
	if sport == "" {
		sport = "basketball_nba"
	}

	matches, err := h.feed.Matches(r.Context(), sport)
	if err != nil {
		RespondError(w, domain.ErrInternal("fetch odds", err))
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}
