package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryKind classifies ledger entries.
type EntryKind string

const (
	EntryDeposit EntryKind = "deposit"
	EntryBet     EntryKind = "bet"
	EntryWin     EntryKind = "win"
	EntryBonus   EntryKind = "bonus"
)

// ValidEntryKind reports whether k is a known entry kind.
func ValidEntryKind(k EntryKind) bool {
	switch k {
	case EntryDeposit, EntryBet, EntryWin, EntryBonus:
		return true
	}
	return false
}

// GameKind identifies a game for ledger entries, sessions and round history.
type GameKind string

const (
	GameBlackjack GameKind = "blackjack"
	GameRoulette  GameKind = "roulette"
	GameSlots     GameKind = "slots"
	GameSportsBet GameKind = "sports_bet"
	GameWheel     GameKind = "wheel"
)

// Stateful reports whether the kind keeps an active session row between
// requests. Stateful kinds are subject to the one-active-session invariant.
func (k GameKind) Stateful() bool {
	return k == GameBlackjack || k == GameSportsBet
}

// LedgerEntry is an append-only ledger_entries row. Amount is signed:
// negative for debits, positive for credits. BalanceAfter snapshots the
// account balance after the entry was applied.
type LedgerEntry struct {
	ID           uuid.UUID `json:"id"`
	AccountID    uuid.UUID `json:"account_id"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balance_after"`
	Kind         EntryKind `json:"type"`
	GameKind     *GameKind `json:"game_kind,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
