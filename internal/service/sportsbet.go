package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/ledger"
	"github.com/bokk3/casino/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SportsBetService places and settles deferred sports bets. A pending bet
// is an active_games session that survives until an explicit settlement
// call resolves it.
type SportsBetService struct {
	pool     *pgxpool.Pool
	engine   *ledger.Engine
	sessions repository.SessionRepository
	rounds   repository.RoundRepository
	outbox   repository.OutboxRepository
}

// NewSportsBetService creates a new SportsBetService.
func NewSportsBetService(
	pool *pgxpool.Pool,
	engine *ledger.Engine,
	sessions repository.SessionRepository,
	rounds repository.RoundRepository,
	outbox repository.OutboxRepository,
) *SportsBetService {
	return &SportsBetService{
		pool:     pool,
		engine:   engine,
		sessions: sessions,
		rounds:   rounds,
		outbox:   outbox,
	}
}

// PlaceBetInput holds a bet request. Odds are decimal odds in hundredths.
type PlaceBetInput struct {
	MatchID string
	Side    string
	Odds    int64
	Stake   int64
	Match   domain.MatchInfo
}

// SportsBetView is the API view of a pending or settled bet.
type SportsBetView struct {
	BetID           uuid.UUID        `json:"bet_id"`
	MatchID         string           `json:"match_id"`
	Side            string           `json:"side"`
	Odds            int64            `json:"odds"`
	Stake           int64            `json:"stake"`
	Match           domain.MatchInfo `json:"match"`
	Status          domain.BetStatus `json:"status"`
	PotentialPayout int64            `json:"potential_payout"`
	PlacedAt        time.Time        `json:"placed_at"`
}

func betView(sessionID uuid.UUID, stake int64, st *domain.SportsBetState) SportsBetView {
	return SportsBetView{
		BetID:           sessionID,
		MatchID:         st.MatchID,
		Side:            st.Side,
		Odds:            st.Odds,
		Stake:           stake,
		Match:           st.Match,
		Status:          st.Status,
		PotentialPayout: st.Payout(stake),
		PlacedAt:        st.PlacedAt,
	}
}

// Place debits the stake and opens a pending bet. One pending bet per
// account; a second placement is rejected before any money moves.
func (s *SportsBetService) Place(ctx context.Context, accountID uuid.UUID, input PlaceBetInput) (*SportsBetView, int64, error) {
	if err := domain.ValidateStake(input.Stake); err != nil {
		return nil, 0, domain.ErrValidation(err.Error())
	}
	state := &domain.SportsBetState{
		MatchID:  input.MatchID,
		Side:     input.Side,
		Odds:     input.Odds,
		Match:    input.Match,
		Status:   domain.BetPending,
		PlacedAt: time.Now().UTC(),
	}
	if err := state.Validate(); err != nil {
		return nil, 0, domain.ErrValidation(err.Error())
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, 0, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	locked, err := s.engine.LockAccount(ctx, tx, accountID)
	if err != nil {
		return nil, 0, err
	}

	existing, err := s.sessions.FindActive(ctx, tx, accountID, domain.GameSportsBet)
	if err != nil {
		return nil, 0, domain.ErrInternal("find active bet", err)
	}
	if existing != nil {
		return nil, 0, domain.ErrGameAlreadyActive(domain.GameSportsBet)
	}

	kind := domain.GameSportsBet
	updated, err := s.engine.Debit(ctx, tx, locked, input.Stake, domain.EntryBet, &kind)
	if err != nil {
		return nil, 0, err
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return nil, 0, domain.ErrInternal("encode bet state", err)
	}
	session := &domain.GameSession{
		ID:         uuid.New(),
		AccountID:  accountID,
		GameKind:   domain.GameSportsBet,
		TotalStake: input.Stake,
		State:      raw,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, tx, session); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, domain.ErrInternal("commit tx", err)
	}

	view := betView(session.ID, session.TotalStake, state)
	return &view, updated.Balance, nil
}

// ListActive returns the account's pending bets. The list is empty or has
// one element.
func (s *SportsBetService) ListActive(ctx context.Context, accountID uuid.UUID) ([]SportsBetView, error) {
	session, err := s.sessions.FindActive(ctx, s.pool, accountID, domain.GameSportsBet)
	if err != nil {
		return nil, domain.ErrInternal("find active bet", err)
	}
	if session == nil {
		return []SportsBetView{}, nil
	}

	state, err := domain.DecodeSportsBetState(session.State)
	if err != nil {
		return nil, domain.ErrInternal("decode bet state", err)
	}
	return []SportsBetView{betView(session.ID, session.TotalStake, state)}, nil
}

// SettleResult is the API view of a settled bet.
type SettleResult struct {
	Bet     SportsBetView `json:"bet"`
	Payout  int64         `json:"payout"`
	Balance int64         `json:"balance"`
}

// Settle resolves a pending bet as won or lost. A bet that does not exist,
// belongs to another account, or was already settled reports the same
// not-found error; settlement happens at most once.
func (s *SportsBetService) Settle(ctx context.Context, accountID, betID uuid.UUID, won bool) (*SettleResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	locked, err := s.engine.LockAccount(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.FindByID(ctx, tx, betID)
	if err != nil {
		return nil, domain.ErrInternal("find bet", err)
	}
	if session == nil || session.AccountID != accountID || session.GameKind != domain.GameSportsBet {
		return nil, domain.ErrBetNotFound()
	}

	state, err := domain.DecodeSportsBetState(session.State)
	if err != nil {
		return nil, domain.ErrInternal("decode bet state", err)
	}

	if err := s.sessions.Delete(ctx, tx, session.ID); err != nil {
		return nil, domain.ErrInternal("delete bet", err)
	}

	balance := locked.Balance
	var payout int64
	if won {
		state.Status = domain.BetWon
		payout = state.Payout(session.TotalStake)
		kind := domain.GameSportsBet
		updated, err := s.engine.Credit(ctx, tx, locked, payout, domain.EntryWin, &kind)
		if err != nil {
			return nil, err
		}
		balance = updated.Balance
	} else {
		state.Status = domain.BetLost
	}

	outcome, err := json.Marshal(state)
	if err != nil {
		return nil, domain.ErrInternal("encode round outcome", err)
	}
	round := &domain.GameRound{
		ID:        uuid.New(),
		AccountID: accountID,
		GameKind:  domain.GameSportsBet,
		Stake:     session.TotalStake,
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

	result := &SettleResult{
		Bet:     betView(session.ID, session.TotalStake, state),
		Payout:  payout,
		Balance: balance,
	}
	return result, nil
}
