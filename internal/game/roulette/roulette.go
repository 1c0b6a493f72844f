// Package roulette implements the single-zero wheel: bet validation, the
// uniform draw and the payout table.
package roulette

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Color is a pocket colour.
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
	Green Color = "green"
)

// redNumbers holds the red pockets of a European wheel; everything else
// except 0 is black.
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// ColorOf returns the colour of a pocket.
func ColorOf(n int) Color {
	switch {
	case n == 0:
		return Green
	case redNumbers[n]:
		return Red
	default:
		return Black
	}
}

// Outside bet identifiers. Straight bets use the number itself ("0".."36").
const (
	BetRed    = "red"
	BetBlack  = "black"
	BetOdd    = "odd"
	BetEven   = "even"
	BetLow    = "low"  // 1-18
	BetHigh   = "high" // 19-36
	BetDozen1 = "dozen-1"
	BetDozen2 = "dozen-2"
	BetDozen3 = "dozen-3"
)

var outsideBets = map[string]bool{
	BetRed: true, BetBlack: true, BetOdd: true, BetEven: true,
	BetLow: true, BetHigh: true, BetDozen1: true, BetDozen2: true, BetDozen3: true,
}

// ValidBetID reports whether id names a straight number or an outside bet.
func ValidBetID(id string) bool {
	if outsideBets[id] {
		return true
	}
	n, err := strconv.Atoi(id)
	return err == nil && n >= 0 && n <= 36
}

// ValidateBets checks a bet map and returns the total stake. Zero-amount
// entries are tolerated (they are ignored at payout) but every id must be
// known and no amount may be negative; the total must be positive.
func ValidateBets(bets map[string]int64) (total int64, err error) {
	if len(bets) == 0 {
		return 0, fmt.Errorf("no bets placed")
	}
	for id, amount := range bets {
		if !ValidBetID(id) {
			return 0, fmt.Errorf("unknown bet %q", id)
		}
		if amount < 0 {
			return 0, fmt.Errorf("bet %q has negative amount", id)
		}
		total += amount
	}
	if total <= 0 {
		return 0, fmt.Errorf("total stake must be positive")
	}
	return total, nil
}

// Spin draws the winning pocket uniformly from 0-36.
func Spin(rng *rand.Rand) int {
	return rng.IntN(37)
}

// Payout returns the total return across all bets for a winning number.
// Straight hits return 36x the stake (35:1 plus the stake), colour, parity
// and half bets 2x, dozens 3x. Outside bets all lose on 0.
func Payout(winning int, bets map[string]int64) int64 {
	var total int64
	color := ColorOf(winning)

	for id, amount := range bets {
		if amount <= 0 {
			continue
		}

		if n, err := strconv.Atoi(id); err == nil {
			if n == winning {
				total += amount * 36
			}
			continue
		}

		if winning == 0 {
			continue
		}

		switch id {
		case BetRed:
			if color == Red {
				total += amount * 2
			}
		case BetBlack:
			if color == Black {
				total += amount * 2
			}
		case BetEven:
			if winning%2 == 0 {
				total += amount * 2
			}
		case BetOdd:
			if winning%2 == 1 {
				total += amount * 2
			}
		case BetLow:
			if winning <= 18 {
				total += amount * 2
			}
		case BetHigh:
			if winning >= 19 {
				total += amount * 2
			}
		case BetDozen1:
			if winning <= 12 {
				total += amount * 3
			}
		case BetDozen2:
			if winning >= 13 && winning <= 24 {
				total += amount * 3
			}
		case BetDozen3:
			if winning >= 25 {
				total += amount * 3
			}
		}
	}
	return total
}
