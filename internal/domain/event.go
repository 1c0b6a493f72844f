package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types.
type EventType string

const (
	EventAccountCreated EventType = "casino.account.created"
	EventEntryPosted    EventType = "casino.wallet.entry.posted"
	EventRoundSettled   EventType = "casino.round.settled"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateAccount AggregateType = "account"
	AggregateWallet  AggregateType = "wallet"
	AggregateRound   AggregateType = "round"
)

// OutboxDraft is a row written to the event_outbox table, always inside the
// same transaction as the state change it describes.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// OutboxRow is an outbox row read back by the relay, with its sequence id.
type OutboxRow struct {
	SeqID int64
	OutboxDraft
}

// NewAccountCreatedEvent builds the outbox draft for a new account.
func NewAccountCreatedEvent(acc *Account) OutboxDraft {
	payload, _ := json.Marshal(map[string]any{
		"account_id": acc.ID,
		"username":   acc.Username,
		"balance":    acc.Balance,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateAccount,
		AggregateID:   acc.ID.String(),
		EventType:     EventAccountCreated,
		Payload:       payload,
		OccurredAt:    time.Now().UTC(),
	}
}

// NewEntryPostedEvent builds the outbox draft for a posted ledger entry.
func NewEntryPostedEvent(entry *LedgerEntry) OutboxDraft {
	payload, _ := json.Marshal(entry)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateWallet,
		AggregateID:   entry.AccountID.String(),
		EventType:     EventEntryPosted,
		Payload:       payload,
		OccurredAt:    time.Now().UTC(),
	}
}

// NewRoundSettledEvent builds the outbox draft for a settled game round.
func NewRoundSettledEvent(round *GameRound) OutboxDraft {
	payload, _ := json.Marshal(round)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateRound,
		AggregateID:   round.AccountID.String(),
		EventType:     EventRoundSettled,
		Payload:       payload,
		OccurredAt:    time.Now().UTC(),
	}
}
