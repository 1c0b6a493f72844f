package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents an accounts row. Balance is whole credits
// (numeric(15,0) in the database) and is mutated only by the ledger engine.
type Account struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	PasswordHash  string     `json:"-"`
	Balance       int64      `json:"balance"`
	LastBonusSpin *time.Time `json:"last_bonus_spin,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// StartingBalance is credited to every new account on registration.
const StartingBalance int64 = 1000
