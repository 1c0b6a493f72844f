package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/infra"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type accountRepo struct{}

// NewAccountRepository returns a pgx-backed AccountRepository.
func NewAccountRepository() AccountRepository {
	return &accountRepo{}
}

const accountColumns = `id, username, password_hash, balance, last_bonus_spin, created_at, updated_at`

func (r *accountRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Account, error) {
	row := db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *accountRepo) FindByUsername(ctx context.Context, db DBTX, username string) (*domain.Account, error) {
	row := db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts WHERE username = $1`, username)
	return scanAccount(row)
}

func (r *accountRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts WHERE id = $1 FOR UPDATE`, id)
	return scanAccount(row)
}

func (r *accountRepo) Create(ctx context.Context, db DBTX, account *domain.Account) error {
	_, err := db.Exec(ctx, `
		INSERT INTO accounts (id, username, password_hash, balance, last_bonus_spin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		account.ID,
		account.Username,
		account.PasswordHash,
		infra.Int64ToNumeric(account.Balance),
		account.LastBonusSpin,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// UpdateBalance uses server-side arithmetic so concurrent writers never
// clobber each other; the balance CHECK constraint is the last line of
// defence against going negative.
func (r *accountRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, delta int64) (*domain.Account, error) {
	row := tx.QueryRow(ctx, `
		UPDATE accounts
		SET balance = balance + $1, updated_at = now()
		WHERE id = $2
		RETURNING `+accountColumns, infra.Int64ToNumeric(delta), accountID)
	return scanAccount(row)
}

func (r *accountRepo) StampBonusSpin(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, at time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE accounts SET last_bonus_spin = $1, updated_at = now()
		WHERE id = $2`, at, accountID)
	if err != nil {
		return fmt.Errorf("stamp bonus spin: %w", err)
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	var balNum pgtype.Numeric
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &balNum, &a.LastBonusSpin, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	a.Balance, err = infra.NumericToInt64(balNum)
	if err != nil {
		return nil, fmt.Errorf("convert balance: %w", err)
	}
	return &a, nil
}
