package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GameSession is an active_games row: the persisted mid-round state of a
// stateful game. At most one row exists per (account, game kind); the
// database enforces this with a unique constraint.
//
// State is a game-specific payload. It is stored as jsonb but is never
// treated as opaque on the way in: each engine decodes it into its own
// typed struct and validates it before acting.
type GameSession struct {
	ID         uuid.UUID       `json:"id"`
	AccountID  uuid.UUID       `json:"account_id"`
	GameKind   GameKind        `json:"game_kind"`
	TotalStake int64           `json:"total_stake"`
	State      json.RawMessage `json:"state"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BetStatus is the lifecycle state of a deferred sports bet.
type BetStatus string

const (
	BetPending BetStatus = "pending"
	BetWon     BetStatus = "won"
	BetLost    BetStatus = "lost"
)

// MatchInfo carries the display metadata captured when a sports bet is placed.
type MatchInfo struct {
	Sport string `json:"sport"`
	Home  string `json:"home"`
	Away  string `json:"away"`
}

// SportsBetState is the session state payload for sports_bet sessions.
// Odds are decimal odds in hundredths (1.90 -> 190) so settlement
// arithmetic stays exact.
type SportsBetState struct {
	MatchID  string    `json:"matchId"`
	Side     string    `json:"side"`
	Odds     int64     `json:"odds"`
	Match    MatchInfo `json:"match"`
	Status   BetStatus `json:"status"`
	PlacedAt time.Time `json:"placedAt"`
}

// Validate checks a loaded sports bet state for corruption.
func (s *SportsBetState) Validate() error {
	if s.MatchID == "" {
		return fmt.Errorf("sports bet state: missing match id")
	}
	if s.Side == "" {
		return fmt.Errorf("sports bet state: missing side")
	}
	if s.Odds < 100 {
		return fmt.Errorf("sports bet state: odds %d below 1.00", s.Odds)
	}
	switch s.Status {
	case BetPending, BetWon, BetLost:
	default:
		return fmt.Errorf("sports bet state: unknown status %q", s.Status)
	}
	return nil
}

// DecodeSportsBetState parses and validates a sports_bet session payload.
func DecodeSportsBetState(raw json.RawMessage) (*SportsBetState, error) {
	var st SportsBetState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode sports bet state: %w", err)
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return &st, nil
}

// Payout returns the total return for a winning bet: stake * decimal odds.
func (s *SportsBetState) Payout(stake int64) int64 {
	return stake * s.Odds / 100
}
