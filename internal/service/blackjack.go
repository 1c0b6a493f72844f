package service

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"github.com/bokk3/casino/internal/domain"
	"github.com/bokk3/casino/internal/game"
	"github.com/bokk3/casino/internal/game/blackjack"
	"github.com/bokk3/casino/internal/ledger"
	"github.com/bokk3/casino/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BlackjackService runs multi-hand blackjack rounds. Mid-round state lives
// in active_games; every request replays against the persisted state under
// the account row lock.
type BlackjackService struct {
	pool     *pgxpool.Pool
	engine   *ledger.Engine
	sessions repository.SessionRepository
	rounds   repository.RoundRepository
	outbox   repository.OutboxRepository
	newRand  func() *rand.Rand
}

// NewBlackjackService creates a new BlackjackService.
func NewBlackjackService(
	pool *pgxpool.Pool,
	engine *ledger.Engine,
	sessions repository.SessionRepository,
	rounds repository.RoundRepository,
	outbox repository.OutboxRepository,
) *BlackjackService {
	return &BlackjackService{
		pool:     pool,
		engine:   engine,
		sessions: sessions,
		rounds:   rounds,
		outbox:   outbox,
		newRand:  game.NewRand,
	}
}

// HandView is one player hand as returned to the client.
type HandView struct {
	Cards  []blackjack.Card     `json:"cards"`
	Value  int                  `json:"value"`
	Spot   int                  `json:"spot"`
	Stake  int64                `json:"stake"`
	Status blackjack.HandStatus `json:"status"`
}

// BlackjackRound is the API view of a blackjack round. The dealer's hole
// card stays masked until the round settles.
type BlackjackRound struct {
	SessionID   *uuid.UUID       `json:"session_id,omitempty"`
	Phase       blackjack.Phase  `json:"phase"`
	ActiveHand  int              `json:"active_hand"`
	Hands       []HandView       `json:"hands"`
	Dealer      []blackjack.Card `json:"dealer"`
	DealerValue *int             `json:"dealer_value,omitempty"`
	Payout      int64            `json:"payout"`
	Settled     bool             `json:"settled"`
	Balance     int64            `json:"balance"`
}

func blackjackView(st *blackjack.State, sessionID *uuid.UUID, payout, balance int64) *BlackjackRound {
	settled := st.Phase == blackjack.PhaseSettled

	hands := make([]HandView, len(st.Hands))
	for i, h := range st.Hands {
		hands[i] = HandView{
			Cards:  h.Cards,
			Value:  blackjack.HandValue(h.Cards),
			Spot:   h.Spot,
			Stake:  h.Stake,
			Status: h.Status,
		}
	}

	dealer := st.Dealer
	var dealerValue *int
	if settled {
		v := blackjack.HandValue(dealer)
		dealerValue = &v
	} else {
		dealer = blackjack.MaskHidden(dealer)
	}

	return &BlackjackRound{
		SessionID:   sessionID,
		Phase:       st.Phase,
		ActiveHand:  st.ActiveHand,
		Hands:       hands,
		Dealer:      dealer,
		DealerValue: dealerValue,
		Payout:      payout,
		Settled:     settled,
		Balance:     balance,
	}
}

// Deal starts a round: debits the total stake, deals the cards and
// persists the session, all in one transaction. A failed debit leaves no
// trace of the round.
func (s *BlackjackService) Deal(ctx context.Context, accountID uuid.UUID, bets []int64) (*BlackjackRound, error) {
	total, err := domain.ValidateBlackjackBets(bets)
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

	existing, err := s.sessions.FindActive(ctx, tx, accountID, domain.GameBlackjack)
	if err != nil {
		return nil, domain.ErrInternal("find active session", err)
	}
	if existing != nil {
		return nil, domain.ErrGameAlreadyActive(domain.GameBlackjack)
	}

	kind := domain.GameBlackjack
	updated, err := s.engine.Debit(ctx, tx, locked, total, domain.EntryBet, &kind)
	if err != nil {
		return nil, err
	}

	st, err := blackjack.Deal(bets, s.newRand())
	if err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	raw, err := st.Encode()
	if err != nil {
		return nil, domain.ErrInternal("encode game state", err)
	}
	session := &domain.GameSession{
		ID:         uuid.New(),
		AccountID:  accountID,
		GameKind:   domain.GameBlackjack,
		TotalStake: total,
		State:      raw,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, tx, session); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	return blackjackView(st, &session.ID, 0, updated.Balance), nil
}

// Action applies a hit or stand to the active round. When the player turn
// ends the dealer plays out, winnings are credited and the session row is
// replaced by a game_rounds entry, all in the same transaction.
func (s *BlackjackService) Action(ctx context.Context, accountID uuid.UUID, action string) (*BlackjackRound, error) {
	if action != "hit" && action != "stand" {
		return nil, domain.ErrValidation("action must be hit or stand")
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

	session, err := s.sessions.FindActive(ctx, tx, accountID, domain.GameBlackjack)
	if err != nil {
		return nil, domain.ErrInternal("find active session", err)
	}
	if session == nil {
		return nil, domain.ErrNoActiveGame(domain.GameBlackjack)
	}

	st, err := blackjack.DecodeState(session.State)
	if err != nil {
		return nil, domain.ErrInternal("decode game state", err)
	}

	// A deal where every hand was a natural persists in the dealer phase;
	// the next action call resolves it without applying the action itself.
	if st.Phase == blackjack.PhasePlayer {
		switch action {
		case "hit":
			err = st.Hit()
		case "stand":
			err = st.Stand()
		}
		if err != nil {
			return nil, domain.ErrValidation(err.Error())
		}
	}

	if !st.PlayerTurnOver() {
		raw, err := st.Encode()
		if err != nil {
			return nil, domain.ErrInternal("encode game state", err)
		}
		if err := s.sessions.UpdateState(ctx, tx, session.ID, raw); err != nil {
			return nil, domain.ErrInternal("update session", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, domain.ErrInternal("commit tx", err)
		}
		return blackjackView(st, &session.ID, 0, locked.Balance), nil
	}

	payout := st.PlayDealer()

	if err := s.sessions.Delete(ctx, tx, session.ID); err != nil {
		return nil, domain.ErrInternal("delete session", err)
	}

	balance := locked.Balance
	kind := domain.GameBlackjack
	if payout > 0 {
		updated, err := s.engine.Credit(ctx, tx, locked, payout, domain.EntryWin, &kind)
		if err != nil {
			return nil, err
		}
		balance = updated.Balance
	}

	outcome, err := json.Marshal(struct {
		Hands  []blackjack.Hand `json:"hands"`
		Dealer []blackjack.Card `json:"dealer"`
	}{st.Hands, st.Dealer})
	if err != nil {
		return nil, domain.ErrInternal("encode round outcome", err)
	}
	round := &domain.GameRound{
		ID:        uuid.New(),
		AccountID: accountID,
		GameKind:  domain.GameBlackjack,
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

	return blackjackView(st, nil, payout, balance), nil
}
