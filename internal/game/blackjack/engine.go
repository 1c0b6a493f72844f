package blackjack

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
)

// HandStatus is the per-hand resolution state.
type HandStatus string

const (
	StatusPlaying   HandStatus = "playing"
	StatusBlackjack HandStatus = "blackjack"
	StatusPlayerWin HandStatus = "player_win"
	StatusDealerWin HandStatus = "dealer_win"
	StatusPush      HandStatus = "push"
)

// Phase is the game-level state.
type Phase string

const (
	PhasePlayer  Phase = "player_turn"
	PhaseDealer  Phase = "dealer_turn"
	PhaseSettled Phase = "settled"
)

// NoActiveHand is the ActiveHand value when no player hand awaits action.
const NoActiveHand = -1

// Hand is one player bet spot after the deal.
type Hand struct {
	Cards  []Card     `json:"cards"`
	Spot   int        `json:"spot"`
	Stake  int64      `json:"stake"`
	Status HandStatus `json:"status"`
}

// State is the full persisted blackjack session state. Phase is
// authoritative; ActiveHand mirrors it for clients (-1 during the dealer
// turn) and the two are cross-checked on load.
type State struct {
	Shoe       []Card `json:"shoe"`
	Hands      []Hand `json:"playerHands"`
	Dealer     []Card `json:"dealerHand"`
	ActiveHand int    `json:"activeHandIndex"`
	Phase      Phase  `json:"phase"`
}

// Deal builds a shuffled shoe and deals a new round. bets maps bet spots to
// stakes; spots with zero stake are skipped and keep no hand. Hands dealt a
// natural 21 enter StatusBlackjack immediately. When no hand is left playing
// (every spot a natural) the state starts in the dealer phase and the next
// action call resolves it.
func Deal(bets []int64, rng *rand.Rand) (*State, error) {
	shoe := NewShoe()
	Shuffle(shoe, rng)

	s := &State{Shoe: shoe}

	s.Dealer = []Card{s.draw(), s.draw()}
	s.Dealer[1].Hidden = true

	for spot, stake := range bets {
		if stake <= 0 {
			continue
		}
		hand := Hand{
			Cards:  []Card{s.draw(), s.draw()},
			Spot:   spot,
			Stake:  stake,
			Status: StatusPlaying,
		}
		if HandValue(hand.Cards) == 21 {
			hand.Status = StatusBlackjack
		}
		s.Hands = append(s.Hands, hand)
	}
	if len(s.Hands) == 0 {
		return nil, fmt.Errorf("deal: no staked bet spots")
	}

	s.ActiveHand = s.nextPlayingHand(-1)
	if s.ActiveHand == NoActiveHand {
		s.Phase = PhaseDealer
	} else {
		s.Phase = PhasePlayer
	}
	return s, nil
}

// draw pops the next card off the shoe.
func (s *State) draw() Card {
	c := s.Shoe[len(s.Shoe)-1]
	s.Shoe = s.Shoe[:len(s.Shoe)-1]
	return c
}

// nextPlayingHand returns the index of the first hand with StatusPlaying
// after the given index, or NoActiveHand. Blackjack hands are skipped: they
// await the dealer, not the player.
func (s *State) nextPlayingHand(after int) int {
	for i := after + 1; i < len(s.Hands); i++ {
		if s.Hands[i].Status == StatusPlaying {
			return i
		}
	}
	return NoActiveHand
}

// advance moves the turn to the next playing hand, entering the dealer
// phase when none remains.
func (s *State) advance() {
	s.ActiveHand = s.nextPlayingHand(s.ActiveHand)
	if s.ActiveHand == NoActiveHand {
		s.Phase = PhaseDealer
	}
}

// Hit draws one card into the active hand. A bust marks the hand
// dealer_win and advances the turn; otherwise the same hand stays active.
func (s *State) Hit() error {
	if s.Phase != PhasePlayer {
		return fmt.Errorf("hit: no hand awaiting action")
	}
	hand := &s.Hands[s.ActiveHand]
	hand.Cards = append(hand.Cards, s.draw())
	if HandValue(hand.Cards) > 21 {
		hand.Status = StatusDealerWin
		s.advance()
	}
	return nil
}

// Stand finishes the active hand and advances the turn.
func (s *State) Stand() error {
	if s.Phase != PhasePlayer {
		return fmt.Errorf("stand: no hand awaiting action")
	}
	s.advance()
	return nil
}

// PlayerTurnOver reports whether the dealer should act.
func (s *State) PlayerTurnOver() bool {
	return s.Phase != PhasePlayer
}

// PlayDealer reveals the hole card, runs the dealer and settles every hand.
// The dealer draws to a hard 17 (no soft-17 special case) but only when at
// least one hand survived the player turn. Returns the total non-forfeited
// return to credit: 5/2 stake for a natural against a dealer non-natural,
// 2x stake for a win, the stake back for a push.
func (s *State) PlayDealer() int64 {
	if s.Phase != PhaseDealer {
		return 0
	}

	for i := range s.Dealer {
		s.Dealer[i].Hidden = false
	}

	anyLive := false
	for _, h := range s.Hands {
		if h.Status == StatusPlaying || h.Status == StatusBlackjack {
			anyLive = true
			break
		}
	}
	if anyLive {
		for HandValue(s.Dealer) < 17 {
			s.Dealer = append(s.Dealer, s.draw())
		}
	}

	dealerValue := HandValue(s.Dealer)
	dealerNatural := dealerValue == 21 && len(s.Dealer) == 2

	var totalWin int64
	for i := range s.Hands {
		hand := &s.Hands[i]
		switch hand.Status {
		case StatusDealerWin:
			// Busted during the player turn; stake already forfeit.
		case StatusBlackjack:
			if dealerNatural {
				hand.Status = StatusPush
				totalWin += hand.Stake
			} else {
				hand.Status = StatusPlayerWin
				totalWin += hand.Stake * 5 / 2
			}
		default:
			playerValue := HandValue(hand.Cards)
			switch {
			case dealerValue > 21 || playerValue > dealerValue:
				hand.Status = StatusPlayerWin
				totalWin += hand.Stake * 2
			case playerValue < dealerValue:
				hand.Status = StatusDealerWin
			default:
				hand.Status = StatusPush
				totalWin += hand.Stake
			}
		}
	}

	s.Phase = PhaseSettled
	return totalWin
}

// TotalStake sums the stakes across all hands.
func (s *State) TotalStake() int64 {
	var total int64
	for _, h := range s.Hands {
		total += h.Stake
	}
	return total
}

// Validate cross-checks a loaded state so a corrupt session payload cannot
// be misinterpreted as a playable game.
func (s *State) Validate() error {
	switch s.Phase {
	case PhasePlayer:
		if s.ActiveHand < 0 || s.ActiveHand >= len(s.Hands) {
			return fmt.Errorf("blackjack state: active hand %d out of range", s.ActiveHand)
		}
		if s.Hands[s.ActiveHand].Status != StatusPlaying {
			return fmt.Errorf("blackjack state: active hand %d not playing", s.ActiveHand)
		}
	case PhaseDealer:
		if s.ActiveHand != NoActiveHand {
			return fmt.Errorf("blackjack state: dealer phase with active hand %d", s.ActiveHand)
		}
	case PhaseSettled:
		return fmt.Errorf("blackjack state: settled game persisted as active")
	default:
		return fmt.Errorf("blackjack state: unknown phase %q", s.Phase)
	}

	if len(s.Hands) == 0 || len(s.Hands) > 3 {
		return fmt.Errorf("blackjack state: %d hands", len(s.Hands))
	}
	for i, h := range s.Hands {
		if h.Stake <= 0 {
			return fmt.Errorf("blackjack state: hand %d has stake %d", i, h.Stake)
		}
		switch h.Status {
		case StatusPlaying, StatusBlackjack, StatusPlayerWin, StatusDealerWin, StatusPush:
		default:
			return fmt.Errorf("blackjack state: hand %d has unknown status %q", i, h.Status)
		}
	}
	if len(s.Dealer) < 2 {
		return fmt.Errorf("blackjack state: dealer has %d cards", len(s.Dealer))
	}
	return nil
}

// DecodeState parses and validates a persisted blackjack session payload.
func DecodeState(raw []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode blackjack state: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode serializes the state for session storage.
func (s *State) Encode() ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode blackjack state: %w", err)
	}
	return raw, nil
}
