package service

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/game"
	"github.com/bokk3/casino/internal/game/roulette"
	"github.com/bokk3/casino/internal/ledger"
	"github.com/bokk3/casino/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouletteService runs single-request roulette spins. A spin debits,
// draws, credits and records history in one transaction; no session row
// is ever created.
type RouletteService struct {
	pool    *pgxpool.Pool
	engine  *ledger.Engine
	rounds  repository.RoundRepository
	outbox  repository.OutboxRepository
	newRand func() *rand.Rand
}

// NewRouletteService creates a new RouletteService.
func NewRouletteService(
	pool *pgxpool.Pool,
	engine *ledger.Engine,
	rounds repository.RoundRepository,
	outbox repository.OutboxRepository,
) *RouletteService {
	return &RouletteService{
		pool:    pool,
		engine:  engine,
		rounds:  rounds,
		outbox:  outbox,
		newRand: game.NewRand,
	}
}

// RouletteResult is the API view of one spin.
type RouletteResult struct {
	Winning int            `json:"winning_number"`
	Color   roulette.Color `json:"color"`
	Stake   int64          `json:"stake"`
	Payout  int64          `json:"payout"`
	Balance int64          `json:"balance"`
}

// Spin resolves one roulette round.
func (s *RouletteService) Spin(ctx context.Context, accountID uuid.UUID, bets map[string]int64) (*RouletteResult, error) {
	total, err := roulette.ValidateBets(bets)
	if err != nil {
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

	kind := domain.GameRoulette
	updated, err := s.engine.Debit(ctx, tx, locked, total, domain.EntryBet, &kind)
	if err != nil {
		return nil, err
	}

	winning := roulette.Spin(s.newRand())
	payout := roulette.Payout(winning, bets)

	if payout > 0 {
		if updated, err = s.engine.Credit(ctx, tx, locked, payout, domain.EntryWin, &kind); err != nil {
			return nil, err
		}
	}

	outcome, err := json.Marshal(struct {
		Winning int              `json:"winning_number"`
		Color   roulette.Color   `json:"color"`
		Bets    map[string]int64 `json:"bets"`
	}{winning, roulette.ColorOf(winning), bets})
	if err != nil {
		return nil, domain.ErrInternal("encode round outcome", err)
	}
	round := &domain.GameRound{
		ID:        uuid.New(),
		AccountID: accountID,
		GameKind:  domain.GameRoulette,
		Stake:     total,
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

	return &RouletteResult{
		Winning: winning,
		Color:   roulette.ColorOf(winning),
		Stake:   total,
		Payout:  payout,
		Balance: updated.Balance,
	}, nil
}
