package blackjack

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(rank Rank) Card {
	return Card{Suit: "hearts", Rank: rank, Value: rankValue(rank)}
}

func TestNewShoe(t *testing.T) {
	shoe := NewShoe()
	require.Len(t, shoe, 52)

	seen := make(map[Card]bool, 52)
	for _, c := range shoe {
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}

	var total int
	for _, c := range shoe {
		total += c.Value
	}
	// 4 suits * (2+..+10 + 3*10 + 11)
	assert.Equal(t, 4*(54+30+11), total)
}

func TestShuffleKeepsAllCards(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	shoe := NewShoe()
	Shuffle(shoe, rng)
	require.Len(t, shoe, 52)

	seen := make(map[Card]bool, 52)
	for _, c := range shoe {
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards []Card
		want  int
	}{
		{"simple", []Card{card("10"), card("7")}, 17},
		{"faces count ten", []Card{card("K"), card("Q")}, 20},
		{"soft ace", []Card{card("A"), card("6")}, 17},
		{"natural", []Card{card("A"), card("K")}, 21},
		{"ace reduced once", []Card{card("A"), card("9"), card("5")}, 15},
		{"two aces one reduced", []Card{card("A"), card("A")}, 12},
		{"two aces both reduced", []Card{card("A"), card("A"), card("K"), card("9")}, 21},
		{"unreducible bust", []Card{card("K"), card("Q"), card("5")}, 25},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandValue(tt.cards))
		})
	}
}

func TestHandValueExcludesHidden(t *testing.T) {
	hole := card("K")
	hole.Hidden = true
	assert.Equal(t, 7, HandValue([]Card{card("7"), hole}))
}

func TestMaskHidden(t *testing.T) {
	hole := card("K")
	hole.Hidden = true
	masked := MaskHidden([]Card{card("7"), hole})

	require.Len(t, masked, 2)
	assert.Equal(t, card("7"), masked[0])
	assert.Equal(t, Card{Hidden: true}, masked[1], "hole card rank must not leak")
}
