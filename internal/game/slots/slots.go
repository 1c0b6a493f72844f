// Package slots implements the 3-reel slot machine: the weighted symbol
// table, the cumulative-weight draw and the paytable.
package slots

import "math/rand/v2"

// Symbol is one reel symbol. Weight drives draw frequency; Multiplier is
// the three-of-a-kind payout multiplier.
type Symbol struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Multiplier int64  `json:"multiplier"`
	Weight     int    `json:"weight"`
}

// lowTierID is the symbol that also pays on one or two matches.
const lowTierID = "cherry"

// Symbols is the machine's symbol table, ordered rarest-last.
var Symbols = []Symbol{
	{ID: "cherry", Name: "Cherry", Icon: "🍒", Multiplier: 5, Weight: 40},
	{ID: "lemon", Name: "Lemon", Icon: "🍋", Multiplier: 8, Weight: 30},
	{ID: "orange", Name: "Orange", Icon: "🍊", Multiplier: 10, Weight: 25},
	{ID: "plum", Name: "Plum", Icon: "🫐", Multiplier: 15, Weight: 20},
	{ID: "bell", Name: "Bell", Icon: "🔔", Multiplier: 25, Weight: 10},
	{ID: "bar", Name: "BAR", Icon: "🎰", Multiplier: 50, Weight: 5},
	{ID: "seven", Name: "777", Icon: "💎", Multiplier: 100, Weight: 2},
}

// TotalWeight is the sum of all symbol weights.
var TotalWeight = func() int {
	total := 0
	for _, s := range Symbols {
		total += s.Weight
	}
	return total
}()

// DrawSymbol samples one symbol: a uniform draw in [0, TotalWeight) walked
// cumulatively against each symbol's weight.
func DrawSymbol(rng *rand.Rand) Symbol {
	n := rng.IntN(TotalWeight)
	for _, s := range Symbols {
		if n < s.Weight {
			return s
		}
		n -= s.Weight
	}
	return Symbols[0]
}

// SpinReels draws the 3 reels independently.
func SpinReels(rng *rand.Rand) [3]Symbol {
	return [3]Symbol{DrawSymbol(rng), DrawSymbol(rng), DrawSymbol(rng)}
}

// Payout evaluates a spin. Three of a kind pays stake times the symbol
// multiplier; exactly two cherries pay 2x; a single cherry returns half the
// stake, floored; anything else pays nothing.
func Payout(reels [3]Symbol, stake int64) int64 {
	counts := make(map[string]int, 3)
	for _, s := range reels {
		counts[s.ID]++
	}

	for _, s := range Symbols {
		if counts[s.ID] == 3 {
			return stake * s.Multiplier
		}
	}

	switch counts[lowTierID] {
	case 2:
		return stake * 2
	case 1:
		return stake / 2
	}
	return 0
}

// SymbolByID looks up a symbol; used by tests and round descriptors.
func SymbolByID(id string) (Symbol, bool) {
	for _, s := range Symbols {
		if s.ID == id {
			return s, true
		}
	}
	return Symbol{}, false
}
