package service

import (
	"context"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WalletService exposes balance and transaction history reads.
type WalletService struct {
	pool     *pgxpool.Pool
	accounts repository.AccountRepository
	entries  repository.LedgerRepository
}

// NewWalletService creates a new WalletService.
func NewWalletService(pool *pgxpool.Pool, accounts repository.AccountRepository, entries repository.LedgerRepository) *WalletService {
	return &WalletService{pool: pool, accounts: accounts, entries: entries}
}

// Balance returns the account's current balance snapshot.
func (s *WalletService) Balance(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, s.pool, accountID)
	if err != nil {
		return nil, domain.ErrInternal("find account", err)
	}
	if account == nil {
		return nil, domain.ErrNotFound("account", accountID.String())
	}
	return account, nil
}

// TransactionPage is one page of ledger history, newest first.
type TransactionPage struct {
	Entries []domain.LedgerEntry `json:"transactions"`
	Total   int64                `json:"total"`
	Pages   int64                `json:"pages"`
	Page    int                  `json:"page"`
	Limit   int                  `json:"limit"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Transactions returns one page of the account's ledger history. A
// non-empty kind restricts the page to that entry kind.
func (s *WalletService) Transactions(ctx context.Context, accountID uuid.UUID, kind string, page, limit int) (*TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var kindFilter *domain.EntryKind
	if kind != "" {
		k := domain.EntryKind(kind)
		if !domain.ValidEntryKind(k) {
			return nil, domain.ErrValidation("unknown transaction type: " + kind)
		}
		kindFilter = &k
	}

	total, err := s.entries.CountByAccount(ctx, s.pool, accountID, kindFilter)
	if err != nil {
		return nil, domain.ErrInternal("count transactions", err)
	}

	offset := (page - 1) * limit
	entries, err := s.entries.ListByAccount(ctx, s.pool, accountID, kindFilter, offset, limit)
	if err != nil {
		return nil, domain.ErrInternal("list transactions", err)
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	return &TransactionPage{
		Entries: entries,
		Total:   total,
		Pages:   pages,
		Page:    page,
		Limit:   limit,
	}, nil
}
