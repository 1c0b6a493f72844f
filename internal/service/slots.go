package service

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/game"
	"github.com/bokk3/casino/internal/game/slots"
	"github.com/bokk3/casino/internal/ledger"
	"github.com/bokk3/casino/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SlotsService runs single-request slot machine spins.
type SlotsService struct {
	pool    *pgxpool.Pool
	engine  *ledger.Engine
	rounds  repository.RoundRepository
	outbox  repository.OutboxRepository
	newRand func() *rand.Rand
}

// NewSlotsService creates a new SlotsService.
func NewSlotsService(
	pool *pgxpool.Pool,
	engine *ledger.Engine,
	rounds repository.RoundRepository,
	outbox repository.OutboxRepository,
) *SlotsService {
	return &SlotsService{
		pool:    pool,
		engine:  engine,
		rounds:  rounds,
		outbox:  outbox,
		newRand: game.NewRand,
	}
}

// SlotsResult is the API view of one spin.
type SlotsResult struct {
	Reels   [3]slots.Symbol `json:"reels"`
	Stake   int64           `json:"stake"`
	Payout  int64           `json:"payout"`
	Balance int64           `json:"balance"`
}

// Spin resolves one slot machine round.
func (s *SlotsService) Spin(ctx context.Context, accountID uuid.UUID, stake int64) (*SlotsResult, error) {
	if err := domain.ValidateStake(stake); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	locked, err := s.engine.LockAccount(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	kind := domain.GameSlots
	updated, err := s.engine.Debit(ctx, tx, locked, stake, domain.EntryBet, &kind)
	if err != nil {
		return nil, err
	}

	reels := slots.SpinReels(s.newRand())
	payout := slots.Payout(reels, stake)

	if payout > 0 {
		if updated, err = s.engine.Credit(ctx, tx, locked, payout, domain.EntryWin, &kind); err != nil {
			return nil, err
		}
	}

	outcome, err := json.Marshal(struct {
		Reels [3]slots.Symbol `json:"reels"`
	}{reels})
	if err != nil {
		return nil, domain.ErrInternal("encode round outcome", err)
	}
	round := &domain.GameRound{
		ID:        uuid.New(),
		AccountID: accountID,
		GameKind:  domain.GameSlots,
		Stake:     stake,
		Outcome:   outcome,
		Payout:    payout,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.rounds.Insert(ctx, tx, round); err != nil {
		return nil, domain.ErrInternal("insert round", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewRoundSettledEvent(round)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	return &SlotsResult{
		Reels:   reels,
		Stake:   stake,
		Payout:  payout,
		Balance: updated.Balance,
	}, nil
}
