package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bokk3/casino/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// AccountRepository provides access to accounts.
type AccountRepository interface {
	// FindByID returns an account by ID, nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Account, error)

	// FindByUsername returns an account by username, nil if absent.
	FindByUsername(ctx context.Context, db DBTX, username string) (*domain.Account, error)

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE) and returns the account.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error)

	// Create inserts a new account.
	Create(ctx context.Context, db DBTX, account *domain.Account) error

	// UpdateBalance applies a signed delta with server-side arithmetic and
	// returns the updated account.
	UpdateBalance(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, delta int64) (*domain.Account, error)

	// StampBonusSpin records the time of the account's latest bonus wheel spin.
	StampBonusSpin(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, at time.Time) error
}

// LedgerRepository provides access to the append-only ledger_entries table.
type LedgerRepository interface {
	// Insert creates a new ledger entry with its balance snapshot.
	Insert(ctx context.Context, db DBTX, entry *domain.LedgerEntry) error

	// ListByAccount returns entries for an account, newest first, with
	// offset pagination. A non-nil kind restricts the list to that entry kind.
	ListByAccount(ctx context.Context, db DBTX, accountID uuid.UUID, kind *domain.EntryKind, offset, limit int) ([]domain.LedgerEntry, error)

	// CountByAccount returns the number of entries for an account,
	// optionally restricted to one entry kind.
	CountByAccount(ctx context.Context, db DBTX, accountID uuid.UUID, kind *domain.EntryKind) (int64, error)
}

// SessionRepository provides access to active_games.
type SessionRepository interface {
	// Create inserts an active game session. A unique violation on
	// (account_id, game_kind) surfaces as a game-already-active conflict.
	Create(ctx context.Context, db DBTX, session *domain.GameSession) error

	// FindActive returns the account's active session of the given kind,
	// nil if absent.
	FindActive(ctx context.Context, db DBTX, accountID uuid.UUID, kind domain.GameKind) (*domain.GameSession, error)

	// FindByID returns a session by ID, nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.GameSession, error)

	// UpdateState replaces the session's state payload.
	UpdateState(ctx context.Context, db DBTX, id uuid.UUID, state json.RawMessage) error

	// Delete removes a settled or abandoned session.
	Delete(ctx context.Context, db DBTX, id uuid.UUID) error
}

// RoundRepository provides access to game_rounds history.
type RoundRepository interface {
	// Insert records a settled round.
	Insert(ctx context.Context, db DBTX, round *domain.GameRound) error

	// ListByAccount returns an account's rounds, newest first.
	ListByAccount(ctx context.Context, db DBTX, accountID uuid.UUID, limit int) ([]domain.GameRound, error)
}

// BonusSpinRepository provides access to the bonus_spins audit table.
type BonusSpinRepository interface {
	// Insert records a bonus wheel spin.
	Insert(ctx context.Context, db DBTX, spin *domain.BonusSpin) error
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event within the same transaction as the
	// state change it describes.
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns pending events for the outbox poller.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxRow, error)

	// MarkPublished removes events that were delivered to the broker.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}
