package repository

import (
	"context"
	"fmt"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/infra"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ledgerRepo struct{}

// NewLedgerRepository returns a pgx-backed LedgerRepository.
func NewLedgerRepository() LedgerRepository {
	return &ledgerRepo{}
}

func (r *ledgerRepo) Insert(ctx context.Context, db DBTX, entry *domain.LedgerEntry) error {
	var gameKind *string
	if entry.GameKind != nil {
		s := string(*entry.GameKind)
		gameKind = &s
	}
	_, err := db.Exec(ctx, `
		INSERT INTO ledger_entries (id, account_id, amount, balance_after, kind, game_kind, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID,
		entry.AccountID,
		infra.Int64ToNumeric(entry.Amount),
		infra.Int64ToNumeric(entry.BalanceAfter),
		string(entry.Kind),
		gameKind,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func (r *ledgerRepo) ListByAccount(ctx context.Context, db DBTX, accountID uuid.UUID, kind *domain.EntryKind, offset, limit int) ([]domain.LedgerEntry, error) {
	rows, err := db.Query(ctx, `
		SELECT id, account_id, amount, balance_after, kind, game_kind, created_at
		FROM ledger_entries
		WHERE account_id = $1
		  AND ($2::text IS NULL OR kind = $2)
		ORDER BY created_at DESC, id DESC
		OFFSET $3 LIMIT $4`, accountID, kindFilter(kind), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (r *ledgerRepo) CountByAccount(ctx context.Context, db DBTX, accountID uuid.UUID, kind *domain.EntryKind) (int64, error) {
	var count int64
	err := db.QueryRow(ctx, `
		SELECT count(*) FROM ledger_entries
		WHERE account_id = $1
		  AND ($2::text IS NULL OR kind = $2)`, accountID, kindFilter(kind)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count ledger entries: %w", err)
	}
	return count, nil
}

func kindFilter(kind *domain.EntryKind) *string {
	if kind == nil {
		return nil
	}
	s := string(*kind)
	return &s
}

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var amountNum, afterNum pgtype.Numeric
	var gameKind *string
	err := row.Scan(&e.ID, &e.AccountID, &amountNum, &afterNum, &e.Kind, &gameKind, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan ledger entry: %w", err)
	}
	if gameKind != nil {
		kind := domain.GameKind(*gameKind)
		e.GameKind = &kind
	}

	if e.Amount, err = infra.NumericToInt64(amountNum); err != nil {
		return nil, fmt.Errorf("convert amount: %w", err)
	}
	if e.BalanceAfter, err = infra.NumericToInt64(afterNum); err != nil {
		return nil, fmt.Errorf("convert balance_after: %w", err)
	}
	return &e, nil
}
