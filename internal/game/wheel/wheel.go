// Package wheel implements the daily bonus wheel: the weighted reward
// tiers and the 24-hour cooldown.
package wheel

import (
	"math/rand/v2"
	"time"
)

// Tier is one wheel segment.
type Tier struct {
	Reward int64 `json:"reward"`
	Weight int   `json:"weight"`
}

// Tiers holds the wheel segments, ordered by reward.
var Tiers = []Tier{
	{Reward: 50, Weight: 40},
	{Reward: 100, Weight: 30},
	{Reward: 250, Weight: 15},
	{Reward: 500, Weight: 10},
	{Reward: 1000, Weight: 5},
}

// Cooldown is the minimum interval between spins for one account.
const Cooldown = 24 * time.Hour

// TotalWeight is the sum of all tier weights.
var TotalWeight = func() int {
	total := 0
	for _, t := range Tiers {
		total += t.Weight
	}
	return total
}()

// Draw samples one reward tier by weight.
func Draw(rng *rand.Rand) Tier {
	n := rng.IntN(TotalWeight)
	for _, t := range Tiers {
		if n < t.Weight {
			return t
		}
		n -= t.Weight
	}
	return Tiers[0]
}

// CanSpin reports whether an account whose last spin was at last (nil if
// never spun) may spin again at now.
func CanSpin(last *time.Time, now time.Time) bool {
	if last == nil {
		return true
	}
	return !now.Before(last.Add(Cooldown))
}

// NextSpinAt returns when the account becomes eligible again. For an
// account that never spun it returns now.
func NextSpinAt(last *time.Time, now time.Time) time.Time {
	if last == nil {
		return now
	}
	next := last.Add(Cooldown)
	if next.Before(now) {
		return now
	}
	return next
}
