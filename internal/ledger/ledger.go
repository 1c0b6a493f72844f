// Package ledger holds the wallet write primitives. Every balance change
// in the system goes through Engine: a row lock, a server-side balance
// update, an append-only entry with the post-update snapshot, and an
// outbox event, all inside the caller's transaction.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Engine provides the foundational wallet operations.
type Engine struct {
	accounts repository.AccountRepository
	entries  repository.LedgerRepository
	outbox   repository.OutboxRepository
}

// NewEngine creates a ledger engine with the given repositories.
func NewEngine(
	accounts repository.AccountRepository,
	entries repository.LedgerRepository,
	outbox repository.OutboxRepository,
) *Engine {
	return &Engine{
		accounts: accounts,
		entries:  entries,
		outbox:   outbox,
	}
}

// LockAccount acquires a row-level lock and returns the account. Must be
// called within a transaction; it serializes all wallet writes for the
// account until commit.
func (e *Engine) LockAccount(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) (*domain.Account, error) {
	account, err := e.accounts.LockForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, fmt.Errorf("lock account: %w", err)
	}
	if account == nil {
		return nil, domain.ErrNotFound("account", accountID.String())
	}
	return account, nil
}

// Debit withdraws amount from a locked account. The caller must hold the
// row lock via LockAccount; locked carries the balance the funds check
// runs against. amount must be positive.
func (e *Engine) Debit(ctx context.Context, tx pgx.Tx, locked *domain.Account, amount int64, kind domain.EntryKind, game *domain.GameKind) (*domain.Account, error) {
	if amount <= 0 {
		return nil, domain.ErrValidation(fmt.Sprintf("debit amount must be positive, got %d", amount))
	}
	if locked.Balance < amount {
		return nil, domain.ErrInsufficientFunds()
	}
	return e.post(ctx, tx, locked.ID, -amount, kind, game)
}

// Credit deposits amount into a locked account. amount must be positive.
func (e *Engine) Credit(ctx context.Context, tx pgx.Tx, locked *domain.Account, amount int64, kind domain.EntryKind, game *domain.GameKind) (*domain.Account, error) {
	if amount <= 0 {
		return nil, domain.ErrValidation(fmt.Sprintf("credit amount must be positive, got %d", amount))
	}
	return e.post(ctx, tx, locked.ID, amount, kind, game)
}

// post is the core write primitive:
//  1. Update the account balance with server-side arithmetic
//  2. Insert the ledger entry with the post-update balance snapshot
//  3. Insert the outbox event
//
// All 3 steps run within the caller's transaction.
func (e *Engine) post(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, delta int64, kind domain.EntryKind, game *domain.GameKind) (*domain.Account, error) {
	updated, err := e.accounts.UpdateBalance(ctx, tx, accountID, delta)
	if err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound("account", accountID.String())
	}

	entry := &domain.LedgerEntry{
		ID:           uuid.New(),
		AccountID:    accountID,
		Amount:       delta,
		BalanceAfter: updated.Balance,
		Kind:         kind,
		GameKind:     game,
		CreatedAt:    time.Now().UTC(),
	}
	if err := e.entries.Insert(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("insert ledger entry: %w", err)
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewEntryPostedEvent(entry)); err != nil {
		return nil, fmt.Errorf("insert outbox event: %w", err)
	}

	return updated, nil
}
