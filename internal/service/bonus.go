package service

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/game"
	"github.com/bokk3/casino/internal/game/wheel"
	"github.com/bokk3/casino/internal/ledger"
	"github.com/bokk3/casino/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BonusService runs the daily bonus wheel.
type BonusService struct {
	pool     *pgxpool.Pool
	accounts repository.AccountRepository
	engine   *ledger.Engine
	spins    repository.BonusSpinRepository
	newRand  func() *rand.Rand
	now      func() time.Time
}

// NewBonusService creates a new BonusService.
func NewBonusService(
	pool *pgxpool.Pool,
	accounts repository.AccountRepository,
	engine *ledger.Engine,
	spins repository.BonusSpinRepository,
) *BonusService {
	return &BonusService{
		pool:     pool,
		accounts: accounts,
		engine:   engine,
		spins:    spins,
		newRand:  game.NewRand,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// BonusStatus reports whether the account may spin and when it next can.
type BonusStatus struct {
	Available  bool         `json:"available"`
	NextSpinAt time.Time    `json:"next_spin_at"`
	Tiers      []wheel.Tier `json:"tiers"`
}

// Status returns the account's bonus wheel eligibility.
func (s *BonusService) Status(ctx context.Context, accountID uuid.UUID) (*BonusStatus, error) {
	account, err := s.accounts.FindByID(ctx, s.pool, accountID)
	if err != nil {
		return nil, domain.ErrInternal("find account", err)
	}
	if account == nil {
		return nil, domain.ErrNotFound("account", accountID.String())
	}

	now := s.now()
	return &BonusStatus{
		Available:  wheel.CanSpin(account.LastBonusSpin, now),
		NextSpinAt: wheel.NextSpinAt(account.LastBonusSpin, now),
		Tiers:      wheel.Tiers,
	}, nil
}

// BonusResult is the API view of one wheel spin.
type BonusResult struct {
	Reward     int64     `json:"reward"`
	Balance    int64     `json:"balance"`
	NextSpinAt time.Time `json:"next_spin_at"`
}

// Spin draws a reward tier and credits it. The cooldown check runs under
// the account row lock, so two racing spins cannot both pass it.
func (s *BonusService) Spin(ctx context.Context, accountID uuid.UUID) (*BonusResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	locked, err := s.engine.LockAccount(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !wheel.CanSpin(locked.LastBonusSpin, now) {
		return nil, domain.ErrBonusNotAvailable(wheel.NextSpinAt(locked.LastBonusSpin, now))
	}

	tier := wheel.Draw(s.newRand())

	kind := domain.GameWheel
	updated, err := s.engine.Credit(ctx, tx, locked, tier.Reward, domain.EntryBonus, &kind)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.StampBonusSpin(ctx, tx, accountID, now); err != nil {
		return nil, domain.ErrInternal("stamp bonus spin", err)
	}

	spin := &domain.BonusSpin{
		ID:        uuid.New(),
		AccountID: accountID,
		Reward:    tier.Reward,
		CreatedAt: now,
	}
	if err := s.spins.Insert(ctx, tx, spin); err != nil {
		return nil, domain.ErrInternal("insert bonus spin", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	return &BonusResult{
		Reward:     tier.Reward,
		Balance:    updated.Balance,
		NextSpinAt: now.Add(wheel.Cooldown),
	}, nil
}
