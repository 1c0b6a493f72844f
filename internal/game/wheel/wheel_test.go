package wheel

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalWeight(t *testing.T) {
	assert.Equal(t, 100, TotalWeight)
}

func TestDraw(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	counts := make(map[int64]int)
	const draws = 50000
	for i := 0; i < draws; i++ {
		tier := Draw(rng)
		counts[tier.Reward]++
	}

	for _, tier := range Tiers {
		require.Positive(t, counts[tier.Reward], "tier %d never drawn", tier.Reward)
	}
	assert.Greater(t, counts[50], counts[100])
	assert.Greater(t, counts[100], counts[1000])
}

func TestCanSpin(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("never spun", func(t *testing.T) {
		assert.True(t, CanSpin(nil, now))
	})

	t.Run("inside cooldown", func(t *testing.T) {
		last := now.Add(-23 * time.Hour)
		assert.False(t, CanSpin(&last, now))
	})

	t.Run("exactly at cooldown boundary", func(t *testing.T) {
		last := now.Add(-Cooldown)
		assert.True(t, CanSpin(&last, now))
	})

	t.Run("past cooldown", func(t *testing.T) {
		last := now.Add(-25 * time.Hour)
		assert.True(t, CanSpin(&last, now))
	})
}

func TestNextSpinAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("never spun", func(t *testing.T) {
		assert.Equal(t, now, NextSpinAt(nil, now))
	})

	t.Run("inside cooldown", func(t *testing.T) {
		last := now.Add(-10 * time.Hour)
		assert.Equal(t, last.Add(Cooldown), NextSpinAt(&last, now))
	})

	t.Run("past cooldown clamps to now", func(t *testing.T) {
		last := now.Add(-48 * time.Hour)
		assert.Equal(t, now, NextSpinAt(&last, now))
	})
}
