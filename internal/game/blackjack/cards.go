// Package blackjack implements the blackjack turn state machine: dealing,
// player actions, the dealer policy and multi-hand settlement. Everything in
// this package is pure; persistence and balance movement live in the service
// layer.
package blackjack

import "math/rand/v2"

// Suit is a card suit.
type Suit string

// Rank is a card rank.
type Rank string

// Suits in deck construction order.
var Suits = []Suit{"hearts", "diamonds", "clubs", "spades"}

// Ranks in deck construction order.
var Ranks = []Rank{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Card is a playing card. Value is the blackjack value: 2-10 for pip cards,
// 10 for faces, 11 for an Ace (soft; reduced to 1 during hand valuation when
// needed). Hidden marks the dealer's hole card until reveal.
type Card struct {
	Suit   Suit `json:"suit,omitempty"`
	Rank   Rank `json:"rank,omitempty"`
	Value  int  `json:"value,omitempty"`
	Hidden bool `json:"hidden,omitempty"`
}

// rankValue returns the blackjack value for a rank.
func rankValue(r Rank) int {
	switch r {
	case "A":
		return 11
	case "J", "Q", "K", "10":
		return 10
	case "9":
		return 9
	case "8":
		return 8
	case "7":
		return 7
	case "6":
		return 6
	case "5":
		return 5
	case "4":
		return 4
	case "3":
		return 3
	case "2":
		return 2
	}
	return 0
}

// NewShoe returns an unshuffled standard 52-card deck.
func NewShoe() []Card {
	shoe := make([]Card, 0, 52)
	for _, s := range Suits {
		for _, r := range Ranks {
			shoe = append(shoe, Card{Suit: s, Rank: r, Value: rankValue(r)})
		}
	}
	return shoe
}

// Shuffle permutes the shoe in place with a Fisher-Yates shuffle.
func Shuffle(shoe []Card, rng *rand.Rand) {
	for i := len(shoe) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shoe[i], shoe[j] = shoe[j], shoe[i]
	}
}

// HandValue computes the blackjack value of a hand. Aces count 11 and are
// reduced to 1 one at a time while the total busts. Hidden cards are
// excluded entirely.
func HandValue(cards []Card) int {
	value := 0
	aces := 0
	for _, c := range cards {
		if c.Hidden {
			continue
		}
		value += c.Value
		if c.Rank == "A" {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// MaskHidden returns a copy of cards with hidden cards stripped to the
// Hidden flag, so responses never leak the dealer's hole card.
func MaskHidden(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		if c.Hidden {
			out[i] = Card{Hidden: true}
			continue
		}
		out[i] = c
	}
	return out
}
