package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GameRound is a game_rounds history row, written exactly once per settled
// round and never mutated. Outcome is the game-specific result descriptor
// (reel symbols, winning number, final hands, bet resolution).
type GameRound struct {
	ID        uuid.UUID       `json:"id"`
	AccountID uuid.UUID       `json:"account_id"`
	GameKind  GameKind        `json:"game_kind"`
	Stake     int64           `json:"stake"`
	Outcome   json.RawMessage `json:"outcome"`
	Payout    int64           `json:"payout"`
	CreatedAt time.Time       `json:"created_at"`
}

// BonusSpin is a bonus_spins audit row recording one bonus wheel spin.
type BonusSpin struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Reward    int64     `json:"reward"`
	CreatedAt time.Time `json:"created_at"`
}
